// Package resources provides MCP resource registration for exposing
// Grafana information as MCP resources.
package resources

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

func RegisterMCPResources(s *server.MCPServer, client *grafana.Client) {
	RegisterDatasourcesMCPResource(s, client)
}
