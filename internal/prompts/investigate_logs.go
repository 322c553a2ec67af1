package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func newInvestigateLogsPrompt() mcp.Prompt {
	return mcp.NewPrompt(
		"investigate_logs",
		mcp.WithPromptDescription("Guides an investigation of application logs: discover labels, narrow down a LogQL selector, then query and format the results."),
		mcp.WithArgument("app",
			mcp.ArgumentDescription("Application (label value) to investigate"),
		),
	)
}

func investigateLogsHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	selector := `{app="<app>"}`
	if app := request.Params.Arguments["app"]; app != "" {
		selector = fmt.Sprintf("{app=%q}", app)
	}

	text := fmt.Sprintf(`Investigate recent logs step by step:

1. Call get_loki_labels to see which labels exist.
2. Call get_loki_label_values for the most promising label to pick a value.
3. Call query_loki with a selector such as %s |= "error" over the last hour.
4. Call format_loki_results with format_type "markdown" to summarize what you found.`, selector)

	return mcp.NewGetPromptResult(
		"Loki log investigation",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
