package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

const queryLokiDescription = `Query Loki logs through Grafana. The query parameter is a LogQL expression, Loki's language for filtering and extracting logs. Separate multiple labels with commas, e.g. {app="frontend", source="user"}. Examples: simple stream selection {app="frontend"}; pattern filter {app="frontend"} |= "error"; multiple filters {app="frontend"} |= "error" != "timeout"; regular expression {app="frontend"} |~ "error.*timeout"; field extraction {app="frontend"} | json; filtering on extracted fields {app="frontend"} | json | level="error"; counting count_over_time({app="frontend"}[5m]). Start and end accept Grafana relative time ('now', 'now-1h'), ISO8601/RFC3339 datetimes, or Unix timestamps, and default to the last hour. Log lines longer than max_per_line characters are truncated (0 for unlimited, default 100).`

// descriptionLabelLimit bounds how many live label names are appended to the
// tool description.
const descriptionLabelLimit = 20

type queryLokiParams struct {
	Query      string `json:"query"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Direction  string `json:"direction,omitempty"`
	MaxPerLine *int   `json:"max_per_line,omitempty"`
}

func queryLokiHandler(client *grafana.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var params queryLokiParams
		if err := request.BindArguments(&params); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		if params.Query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		maxPerLine := grafana.DefaultMaxPerLine
		if params.MaxPerLine != nil {
			maxPerLine = *params.MaxPerLine
		}

		result, err := client.QueryLoki(ctx, params.Query, params.Start, params.End, params.Limit, params.Direction, maxPerLine)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshalling result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func newQueryLokiTool(description string) mcp.Tool {
	return mcp.NewTool(
		"query_loki",
		mcp.WithDescription(description),
		mcp.WithString("query",
			mcp.Description("Loki query string (LogQL) to execute"),
			mcp.Required(),
		),
		mcp.WithString("start",
			mcp.Description("Start time (Grafana format like 'now-1h', ISO format, Unix timestamp, or RFC3339; defaults to 1 hour ago)"),
		),
		mcp.WithString("end",
			mcp.Description("End time (Grafana format like 'now', ISO format, Unix timestamp, or RFC3339; defaults to now)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of log lines to return (default: 100)"),
		),
		mcp.WithString("direction",
			mcp.Description("Query direction: 'forward' (oldest first) or 'backward' (newest first, default)"),
		),
		mcp.WithNumber("max_per_line",
			mcp.Description("Maximum characters per log line, 0 for unlimited (default: 100)"),
		),
	)
}

// enrichedQueryLokiDescription appends the datasource's live label names to
// the static description on a best-effort basis. Failures and slow responses
// are ignored; the static description is always sufficient on its own.
func enrichedQueryLokiDescription(client *grafana.Client) string {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	labels, err := client.GetLokiLabels(ctx)
	if err != nil || len(labels.Data) == 0 {
		return queryLokiDescription
	}

	names := labels.Data
	if len(names) > descriptionLabelLimit {
		names = names[:descriptionLabelLimit]
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}

	desc := queryLokiDescription + "\n\nAvailable labels: " + strings.Join(quoted, ", ")
	if extra := len(labels.Data) - descriptionLabelLimit; extra > 0 {
		desc += fmt.Sprintf(", ... and %d more", extra)
	}
	return desc
}

// RegisterQueryLoki registers the query_loki tool with the MCP server.
func RegisterQueryLoki(s *server.MCPServer, client *grafana.Client) {
	s.AddTool(newQueryLokiTool(enrichedQueryLokiDescription(client)), queryLokiHandler(client))
}
