package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/format"
	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

type formatLokiResultsParams struct {
	Results    grafana.QueryResult `json:"results"`
	FormatType string              `json:"format_type,omitempty"`
	MaxPerLine int                 `json:"max_per_line,omitempty"`
}

func formatLokiResultsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params formatLokiResultsParams
	if err := request.BindArguments(&params); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	formatType := params.FormatType
	if formatType == "" {
		formatType = format.TypeText
	}

	out, err := format.Results(&params.Results, formatType, params.MaxPerLine)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(out), nil
}

func newFormatLokiResultsTool() mcp.Tool {
	return mcp.NewTool(
		"format_loki_results",
		mcp.WithDescription("Formats raw query_loki results for reading. 'text' renders each stream's labels followed by its log lines, 'markdown' renders one table per stream, and 'json' pretty-prints the structure unchanged. max_per_line truncates long log lines (0 for unlimited)."),
		mcp.WithObject("results",
			mcp.Description("Loki query results as returned by query_loki"),
			mcp.Required(),
		),
		mcp.WithString("format_type",
			mcp.Description("Output format: 'text' (default), 'markdown', or 'json'"),
		),
		mcp.WithNumber("max_per_line",
			mcp.Description("Maximum characters per log line, 0 for unlimited (default: 0)"),
		),
	)
}

// RegisterFormatLokiResults registers the format_loki_results tool with the MCP server.
func RegisterFormatLokiResults(s *server.MCPServer) {
	s.AddTool(newFormatLokiResultsTool(), formatLokiResultsHandler)
}
