package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/format"
	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

type formatDatasourcesResultsParams struct {
	Results    json.RawMessage `json:"results"`
	FormatType string          `json:"format_type,omitempty"`
}

// decodeDatasources accepts either a {datasources: [...]} listing (the
// get_datasources shape) or a single datasource object (the by-id/by-name
// shape) and normalizes both to a list.
func decodeDatasources(raw json.RawMessage) (*grafana.DatasourceList, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("results must be an object: %w", err)
	}

	if inner, ok := probe["datasources"]; ok {
		var list grafana.DatasourceList
		if err := json.Unmarshal(inner, &list.Datasources); err != nil {
			return nil, fmt.Errorf("decoding datasources: %w", err)
		}
		return &list, nil
	}

	if len(probe) == 0 {
		return &grafana.DatasourceList{Datasources: []grafana.Datasource{}}, nil
	}

	var single grafana.Datasource
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decoding datasource: %w", err)
	}
	return &grafana.DatasourceList{Datasources: []grafana.Datasource{single}}, nil
}

func formatDatasourcesResultsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params formatDatasourcesResultsParams
	if err := request.BindArguments(&params); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	list, err := decodeDatasources(params.Results)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	formatType := params.FormatType
	if formatType == "" {
		formatType = format.TypeText
	}

	out, err := format.Datasources(list, formatType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(out), nil
}

func newFormatDatasourcesResultsTool() mcp.Tool {
	return mcp.NewTool(
		"format_datasources_results",
		mcp.WithDescription("Formats datasource results for reading. Accepts the output of get_datasources, get_datasource_by_id, or get_datasource_by_name. 'text' renders one block per datasource, 'markdown' renders a table, and 'json' pretty-prints the structure."),
		mcp.WithObject("results",
			mcp.Description("Datasource results: either a {datasources: [...]} listing or a single datasource object"),
			mcp.Required(),
		),
		mcp.WithString("format_type",
			mcp.Description("Output format: 'text' (default), 'markdown', or 'json'"),
		),
	)
}

// RegisterFormatDatasourcesResults registers the format_datasources_results tool with the MCP server.
func RegisterFormatDatasourcesResults(s *server.MCPServer) {
	s.AddTool(newFormatDatasourcesResultsTool(), formatDatasourcesResultsHandler)
}
