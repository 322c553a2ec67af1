package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

func getDatasourcesHandler(client *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := client.GetDatasources(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newGetDatasourcesTool() mcp.Tool {
	return mcp.NewTool(
		"get_datasources",
		mcp.WithDescription("Lists all datasources configured in Grafana with their id, uid, name, and type. Useful to verify a Loki datasource exists before querying."),
	)
}

// RegisterGetDatasources registers the get_datasources tool with the MCP server.
func RegisterGetDatasources(s *server.MCPServer, client *grafana.Client) {
	s.AddTool(newGetDatasourcesTool(), getDatasourcesHandler(client))
}
