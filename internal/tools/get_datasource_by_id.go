package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

type getDatasourceByIDParams struct {
	DatasourceID int64 `json:"datasource_id"`
}

func getDatasourceByIDHandler(client *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params getDatasourceByIDParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		ds, err := client.GetDatasourceByID(ctx, params.DatasourceID)
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

func newGetDatasourceByIDTool() mcp.Tool {
	return mcp.NewTool(
		"get_datasource_by_id",
		mcp.WithDescription("Fetches a single Grafana datasource by its numeric id."),
		mcp.WithNumber("datasource_id",
			mcp.Description("ID of the datasource to retrieve"),
			mcp.Required(),
		),
	)
}

// RegisterGetDatasourceByID registers the get_datasource_by_id tool with the MCP server.
func RegisterGetDatasourceByID(s *server.MCPServer, client *grafana.Client) {
	s.AddTool(newGetDatasourceByIDTool(), getDatasourceByIDHandler(client))
}
