package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

type getDatasourceByNameParams struct {
	Name string `json:"name"`
}

func getDatasourceByNameHandler(client *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params getDatasourceByNameParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		ds, err := client.GetDatasourceByName(ctx, params.Name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newGetDatasourceByNameTool() mcp.Tool {
	return mcp.NewTool(
		"get_datasource_by_name",
		mcp.WithDescription("Fetches a single Grafana datasource by its name."),
		mcp.WithString("name",
			mcp.Description("Name of the datasource to retrieve"),
			mcp.Required(),
		),
	)
}

// RegisterGetDatasourceByName registers the get_datasource_by_name tool with the MCP server.
func RegisterGetDatasourceByName(s *server.MCPServer, client *grafana.Client) {
	s.AddTool(newGetDatasourceByNameTool(), getDatasourceByNameHandler(client))
}
