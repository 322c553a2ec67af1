// Package format renders Loki query results and Grafana datasource listings
// as plain text, Markdown, or pretty-printed JSON.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
)

// Supported format types.
const (
	TypeText     = "text"
	TypeMarkdown = "markdown"
	TypeJSON     = "json"
)

// ErrUnsupportedFormat is returned for format types outside text, markdown,
// and json.
var ErrUnsupportedFormat = errors.New("unsupported format type")

// Results renders a Loki query result. For the text and markdown formats,
// maxPerLine truncates individual log lines (0 or less leaves them
// unlimited); the json format ignores it and pretty-prints the structure
// as-is.
func Results(results *grafana.QueryResult, formatType string, maxPerLine int) (string, error) {
	switch formatType {
	case TypeJSON:
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshalling results: %w", err)
		}
		return string(out), nil
	case TypeText:
		return resultsText(results, maxPerLine), nil
	case TypeMarkdown:
		return resultsMarkdown(results, maxPerLine), nil
	default:
		return "", fmt.Errorf("%w: %q (expected text, markdown, or json)", ErrUnsupportedFormat, formatType)
	}
}

func resultsText(results *grafana.QueryResult, maxPerLine int) string {
	streams := results.Data.Result
	if len(streams) == 0 {
		return "No results found"
	}

	var b strings.Builder
	for i, stream := range streams {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Stream: " + labelString(stream.Stream) + "\n")
		for _, value := range stream.Values {
			if len(value) < 2 {
				continue
			}
			b.WriteString(formatTimestamp(value[0]) + ": " + grafana.TruncateLine(value[1], maxPerLine) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func resultsMarkdown(results *grafana.QueryResult, maxPerLine int) string {
	streams := results.Data.Result
	if len(streams) == 0 {
		return "No results found"
	}

	var b strings.Builder
	for i, stream := range streams {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("### Stream: " + labelString(stream.Stream) + "\n\n")
		b.WriteString("| Timestamp | Line |\n")
		b.WriteString("| --- | --- |\n")
		for _, value := range stream.Values {
			if len(value) < 2 {
				continue
			}
			line := escapePipes(grafana.TruncateLine(value[1], maxPerLine))
			b.WriteString("| " + formatTimestamp(value[0]) + " | " + line + " |\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Datasources renders a datasource listing with the same three-format
// contract as Results.
func Datasources(list *grafana.DatasourceList, formatType string) (string, error) {
	switch formatType {
	case TypeJSON:
		out, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshalling datasources: %w", err)
		}
		return string(out), nil
	case TypeText:
		return datasourcesText(list), nil
	case TypeMarkdown:
		return datasourcesMarkdown(list), nil
	default:
		return "", fmt.Errorf("%w: %q (expected text, markdown, or json)", ErrUnsupportedFormat, formatType)
	}
}

func datasourcesText(list *grafana.DatasourceList) string {
	if len(list.Datasources) == 0 {
		return "No datasources found"
	}

	var b strings.Builder
	for i, ds := range list.Datasources {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Datasource: " + ds.Name + " (" + ds.Type + ")")
		if ds.IsDefault {
			b.WriteString(" [default]")
		}
		b.WriteString("\n")
		if ds.ID != nil {
			b.WriteString("  ID: " + strconv.FormatInt(*ds.ID, 10) + "\n")
		}
		if ds.UID != "" {
			b.WriteString("  UID: " + ds.UID + "\n")
		}
		if ds.URL != "" {
			b.WriteString("  URL: " + ds.URL + "\n")
		}
		if ds.Access != "" {
			b.WriteString("  Access: " + ds.Access + "\n")
		}
		if ds.Database != "" {
			b.WriteString("  Database: " + ds.Database + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func datasourcesMarkdown(list *grafana.DatasourceList) string {
	if len(list.Datasources) == 0 {
		return "No datasources found"
	}

	var b strings.Builder
	b.WriteString("| ID | UID | Name | Type | URL | Access | Database | Default |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, ds := range list.Datasources {
		id := ""
		if ds.ID != nil {
			id = strconv.FormatInt(*ds.ID, 10)
		}
		isDefault := ""
		if ds.IsDefault {
			isDefault = "yes"
		}
		cells := []string{id, ds.UID, ds.Name, ds.Type, ds.URL, ds.Access, ds.Database, isDefault}
		for i, cell := range cells {
			cells[i] = escapePipes(cell)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// labelString renders a stream's label set as "k1=v1, k2=v2", sorted by key
// so output is deterministic.
func labelString(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+labels[k])
	}
	return strings.Join(pairs, ", ")
}

// formatTimestamp converts a nanosecond timestamp string to a readable UTC
// datetime. Anything that does not look like a nanosecond timestamp is
// rendered as-is.
func formatTimestamp(ts string) string {
	if len(ts) >= 10 {
		if secs, err := strconv.ParseInt(ts[:10], 10, 64); err == nil {
			return time.Unix(secs, 0).UTC().Format("2006-01-02 15:04:05")
		}
	}
	return ts
}

// escapePipes protects literal pipe characters so Markdown tables are not
// corrupted.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
