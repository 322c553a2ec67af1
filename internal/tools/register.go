// Package tools provides the MCP tools for querying Loki logs and Grafana
// datasources, and for formatting their results.
package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

// RegisterMCPTools registers every tool with the MCP server. All handlers
// share the one gateway client constructed at process start.
func RegisterMCPTools(s *server.MCPServer, client *grafana.Client) {
	// Loki query tools
	RegisterQueryLoki(s, client)
	RegisterGetLokiLabels(s, client)
	RegisterGetLokiLabelValues(s, client)

	// Datasource tools
	RegisterGetDatasources(s, client)
	RegisterGetDatasourceByID(s, client)
	RegisterGetDatasourceByName(s, client)

	// Formatting tools (no gateway access needed)
	RegisterFormatLokiResults(s)
	RegisterFormatDatasourcesResults(s)
}
