package grafana

import (
	"errors"
	"fmt"
)

// ErrNoLokiDatasource is returned when the Grafana instance has no datasource
// of type "loki".
var ErrNoLokiDatasource = errors.New("no Loki datasource found")

// UpstreamError is a failed call to the Grafana API: either a non-2xx
// response (Status and Body carry the upstream detail) or a transport-level
// failure (Err is set and no response was received).
type UpstreamError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: grafana API returned status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: grafana API returned status %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
