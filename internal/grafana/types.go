package grafana

// Datasource represents a Grafana datasource as returned by the
// /api/datasources endpoints. The numeric ID may be absent for provisioned
// datasources, in which case UID identifies it.
type Datasource struct {
	ID        *int64 `json:"id,omitempty"`
	UID       string `json:"uid,omitempty"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	Access    string `json:"access,omitempty"`
	Database  string `json:"database,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// DatasourceList wraps the datasource listing response.
type DatasourceList struct {
	Datasources []Datasource `json:"datasources"`
}

// LogStream is a single stream of log entries from Loki's query_range API.
// Each element of Values is a [timestamp, line] pair; upstream order is
// preserved.
type LogStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// QueryResult represents the response from Loki's query_range API. It is
// passed through to the caller verbatim except for optional per-line
// truncation.
type QueryResult struct {
	Status string    `json:"status,omitempty"`
	Data   QueryData `json:"data"`
}

// QueryData holds the result payload of a range query.
type QueryData struct {
	ResultType string      `json:"resultType,omitempty"`
	Result     []LogStream `json:"result"`
}

// LabelResponse represents the response from Loki's label name and label
// value endpoints.
type LabelResponse struct {
	Status string   `json:"status,omitempty"`
	Data   []string `json:"data"`
}
