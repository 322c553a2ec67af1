// Package prompts provides MCP prompt registration for pre-defined Loki
// log-investigation workflows.
package prompts

import (
	"github.com/mark3labs/mcp-go/server"
)

func RegisterMCPPrompts(s *server.MCPServer) {
	s.AddPrompt(newInvestigateLogsPrompt(), investigateLogsHandler)
}
