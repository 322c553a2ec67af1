package grafana

import (
	"context"
	"net/url"
	"strconv"
)

const (
	// DefaultLogLimit is the number of log lines returned when the caller
	// does not specify a limit.
	DefaultLogLimit = 100

	// DefaultMaxPerLine is the per-line truncation threshold applied to
	// query results when the caller does not specify one.
	DefaultMaxPerLine = 100

	// DefaultDirection returns the newest log lines first.
	DefaultDirection = "backward"
)

// QueryLoki runs a LogQL range query through the Grafana datasource proxy.
// The query string is passed through opaquely.
//
// start and end accept any expression NormalizeTime understands and are
// always normalized to nanosecond timestamps before being sent upstream.
// When start is set and end is not, end defaults to "now"; when both are
// empty the range defaults to the last hour. An empty start with a set end
// is forwarded as an end-only query.
//
// On success, log lines longer than maxPerLine characters are truncated in
// place per TruncateLine; maxPerLine <= 0 disables truncation.
func (c *Client) QueryLoki(ctx context.Context, query, start, end string, limit int, direction string, maxPerLine int) (*QueryResult, error) {
	if start != "" && end == "" {
		end = "now"
	} else if start == "" && end == "" {
		start = "now-1h"
		end = "now"
	}

	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if direction == "" {
		direction = DefaultDirection
	}

	datasourceID, err := c.LokiDatasourceID(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("direction", direction)
	if start != "" {
		params.Set("start", NormalizeTime(start))
	}
	if end != "" {
		params.Set("end", NormalizeTime(end))
	}

	var result QueryResult
	path := "/api/datasources/proxy/" + datasourceID + "/loki/api/v1/query_range"
	if err := c.get(ctx, "querying Loki", path, params, &result); err != nil {
		return nil, err
	}

	truncateStreams(result.Data.Result, maxPerLine)

	return &result, nil
}

// GetLokiLabels lists all label names known to the Loki datasource.
func (c *Client) GetLokiLabels(ctx context.Context) (*LabelResponse, error) {
	datasourceID, err := c.LokiDatasourceID(ctx)
	if err != nil {
		return nil, err
	}

	var resp LabelResponse
	path := "/api/datasources/proxy/" + datasourceID + "/loki/api/v1/labels"
	if err := c.get(ctx, "getting Loki labels", path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []string{}
	}
	return &resp, nil
}

// GetLokiLabelValues lists the values of a single label.
func (c *Client) GetLokiLabelValues(ctx context.Context, label string) (*LabelResponse, error) {
	datasourceID, err := c.LokiDatasourceID(ctx)
	if err != nil {
		return nil, err
	}

	var resp LabelResponse
	path := "/api/datasources/proxy/" + datasourceID + "/loki/api/v1/label/" + url.PathEscape(label) + "/values"
	if err := c.get(ctx, "getting Loki label values", path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []string{}
	}
	return &resp, nil
}

// truncateStreams applies per-line truncation to every entry of every
// stream, mutating entries in place. Entries without a [timestamp, line]
// pair are left untouched.
func truncateStreams(streams []LogStream, maxPerLine int) {
	if maxPerLine <= 0 {
		return
	}
	for _, stream := range streams {
		for _, value := range stream.Values {
			if len(value) < 2 {
				continue
			}
			value[1] = TruncateLine(value[1], maxPerLine)
		}
	}
}
