package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

const datasourcesResourceURI = "grafana://datasources"

func RegisterDatasourcesMCPResource(s *server.MCPServer, client *grafana.Client) {
	s.AddResource(newDatasourcesMCPResource(), datasourcesHandler(client))
}

// Resource schema
func newDatasourcesMCPResource() mcp.Resource {
	return mcp.NewResource(datasourcesResourceURI, "grafana_datasources",
		mcp.WithResourceDescription("Available Grafana datasources - lists datasource ids, uids, names, and types. "+
			"query_loki resolves the Loki datasource automatically; use this resource to see what else is configured."),
		mcp.WithMIMEType("application/json"),
	)
}

// Resource handler
func datasourcesHandler(client *grafana.Client) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := client.GetDatasources(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching datasources: %w", err)
		}

		jsonData, err := json.MarshalIndent(list.Datasources, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling datasources: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      datasourcesResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}
