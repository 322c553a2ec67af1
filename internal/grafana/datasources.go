package grafana

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetDatasources lists all datasources configured in Grafana.
func (c *Client) GetDatasources(ctx context.Context) (*DatasourceList, error) {
	var datasources []Datasource
	if err := c.get(ctx, "getting datasources", "/api/datasources", nil, &datasources); err != nil {
		return nil, err
	}
	if datasources == nil {
		datasources = []Datasource{}
	}
	return &DatasourceList{Datasources: datasources}, nil
}

// GetDatasourceByID fetches a single datasource by its numeric id.
func (c *Client) GetDatasourceByID(ctx context.Context, id int64) (*Datasource, error) {
	var ds Datasource
	path := fmt.Sprintf("/api/datasources/%d", id)
	if err := c.get(ctx, "getting datasource by ID", path, nil, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// GetDatasourceByName fetches a single datasource by name.
func (c *Client) GetDatasourceByName(ctx context.Context, name string) (*Datasource, error) {
	var ds Datasource
	path := "/api/datasources/name/" + url.PathEscape(name)
	if err := c.get(ctx, "getting datasource by name", path, nil, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LokiDatasourceID returns the identifier of the Loki datasource, resolving
// it on first use and caching it for the lifetime of the client. The listing
// is scanned in order and the first datasource of type "loki" wins; its
// numeric id (stringified) is preferred, with uid as the fallback. Returns
// ErrNoLokiDatasource when the instance has none.
//
// The mutex makes resolution at-most-once under concurrent first access.
func (c *Client) LokiDatasourceID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lokiDatasourceID != "" {
		return c.lokiDatasourceID, nil
	}

	list, err := c.GetDatasources(ctx)
	if err != nil {
		return "", err
	}

	for _, ds := range list.Datasources {
		if ds.Type != "loki" {
			continue
		}
		switch {
		case ds.ID != nil:
			c.lokiDatasourceID = strconv.FormatInt(*ds.ID, 10)
		case ds.UID != "":
			c.lokiDatasourceID = ds.UID
		default:
			continue
		}
		return c.lokiDatasourceID, nil
	}

	return "", ErrNoLokiDatasource
}
