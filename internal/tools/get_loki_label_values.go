package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

type getLokiLabelValuesParams struct {
	Label string `json:"label"`
}

func getLokiLabelValuesHandler(client *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params getLokiLabelValuesParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Label == "" {
			return mcp.NewToolResultError("label is required"), nil
		}

		values, err := client.GetLokiLabelValues(ctx, params.Label)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newGetLokiLabelValuesTool() mcp.Tool {
	return mcp.NewTool(
		"get_loki_label_values",
		mcp.WithDescription("Lists the values observed for a single label in the Loki datasource, e.g. label 'app' might return [\"frontend\", \"backend\"]."),
		mcp.WithString("label",
			mcp.Description("The label name to list values for"),
			mcp.Required(),
		),
	)
}

// RegisterGetLokiLabelValues registers the get_loki_label_values tool with the MCP server.
func RegisterGetLokiLabelValues(s *server.MCPServer, client *grafana.Client) {
	s.AddTool(newGetLokiLabelValuesTool(), getLokiLabelValuesHandler(client))
}
