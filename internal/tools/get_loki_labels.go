package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

func getLokiLabelsHandler(client *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		labels, err := client.GetLokiLabels(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(labels, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newGetLokiLabelsTool() mcp.Tool {
	return mcp.NewTool(
		"get_loki_labels",
		mcp.WithDescription("Lists all label names (keys) known to the Loki datasource, e.g. [\"app\", \"env\", \"job\"]. Use these to build LogQL stream selectors for query_loki."),
	)
}

// RegisterGetLokiLabels registers the get_loki_labels tool with the MCP server.
func RegisterGetLokiLabels(s *server.MCPServer, client *grafana.Client) {
	s.AddTool(newGetLokiLabelsTool(), getLokiLabelsHandler(client))
}
