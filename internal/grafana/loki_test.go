package grafana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLokiTestServer serves a datasource listing with a single Loki datasource
// (id 1) and dispatches proxied Loki paths to handler.
func newLokiTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/datasources" {
			_, _ = w.Write([]byte(`[{"id": 1, "uid": "loki-uid", "type": "loki", "name": "Loki"}]`))
			return
		}
		handler(w, r)
	}))
}

func emptyQueryResponse(w http.ResponseWriter) {
	_, _ = w.Write([]byte(`{"status": "success", "data": {"resultType": "streams", "result": []}}`))
}

func TestQueryLoki_RequestShape(t *testing.T) {
	var gotPath string
	var gotParams url.Values
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query()
		emptyQueryResponse(w)
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.QueryLoki(context.Background(), `{app="test"}`, "", "", 0, "", 0)
	require.NoError(t, err)

	assert.Equal(t, "/api/datasources/proxy/1/loki/api/v1/query_range", gotPath)
	assert.Equal(t, `{app="test"}`, gotParams.Get("query"))
	assert.Equal(t, "100", gotParams.Get("limit"))
	assert.Equal(t, "backward", gotParams.Get("direction"))
}

func TestQueryLoki_DefaultTimeRangeIsLastHour(t *testing.T) {
	var gotParams url.Values
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		emptyQueryResponse(w)
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.QueryLoki(context.Background(), `{app="test"}`, "", "", 100, "backward", 100)
	require.NoError(t, err)

	start, err := strconv.ParseInt(gotParams.Get("start"), 10, 64)
	require.NoError(t, err, "start should be a nanosecond timestamp, got %q", gotParams.Get("start"))
	end, err := strconv.ParseInt(gotParams.Get("end"), 10, 64)
	require.NoError(t, err, "end should be a nanosecond timestamp, got %q", gotParams.Get("end"))

	now := time.Now().UnixNano()
	assert.InDelta(t, now-int64(time.Hour), start, float64(2*time.Second))
	assert.InDelta(t, now, end, float64(2*time.Second))
}

func TestQueryLoki_EndDefaultsToNowWhenStartGiven(t *testing.T) {
	var gotParams url.Values
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		emptyQueryResponse(w)
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.QueryLoki(context.Background(), `{app="test"}`, "2024-03-14T10:00:00Z", "", 100, "backward", 100)
	require.NoError(t, err)

	assert.Equal(t, "1710410400000000000", gotParams.Get("start"))

	end, err := strconv.ParseInt(gotParams.Get("end"), 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixNano(), end, float64(2*time.Second))
}

func TestQueryLoki_NormalizesRelativeTimes(t *testing.T) {
	var gotParams url.Values
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		emptyQueryResponse(w)
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.QueryLoki(context.Background(), `{app="test"}`, "now-1h", "now", 100, "backward", 100)
	require.NoError(t, err)

	// Relative expressions are normalized to nanosecond timestamps, never
	// forwarded verbatim.
	for _, param := range []string{"start", "end"} {
		v := gotParams.Get(param)
		_, err := strconv.ParseInt(v, 10, 64)
		assert.NoError(t, err, "%s should be numeric, got %q", param, v)
	}
}

func TestQueryLoki_TruncatesLongLines(t *testing.T) {
	longLine := strings.Repeat("a", 81)
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := QueryResult{
			Status: "success",
			Data: QueryData{
				ResultType: "streams",
				Result: []LogStream{{
					Stream: map[string]string{"app": "test"},
					Values: [][]string{
						{"1609459200000000000", longLine},
						{"1609459201000000000", "Short log"},
					},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	result, err := c.QueryLoki(context.Background(), `{app="test"}`, "", "", 100, "backward", 20)
	require.NoError(t, err)

	require.Len(t, result.Data.Result, 1)
	values := result.Data.Result[0].Values
	require.Len(t, values, 2)
	assert.Equal(t, strings.Repeat("a", 20)+"...", values[0][1])
	assert.Equal(t, "Short log", values[1][1])
}

func TestQueryLoki_ZeroMaxPerLineDisablesTruncation(t *testing.T) {
	longLine := strings.Repeat("a", 500)
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := QueryResult{
			Data: QueryData{Result: []LogStream{{
				Stream: map[string]string{"app": "test"},
				Values: [][]string{{"1609459200000000000", longLine}},
			}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	result, err := c.QueryLoki(context.Background(), `{app="test"}`, "", "", 100, "backward", 0)
	require.NoError(t, err)
	assert.Equal(t, longLine, result.Data.Result[0].Values[0][1])
}

func TestQueryLoki_MalformedEntriesLeftUntouched(t *testing.T) {
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "data": {"resultType": "streams", "result": [
			{"stream": {"app": "test"}, "values": [["1609459200000000000"]]}
		]}}`))
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	result, err := c.QueryLoki(context.Background(), `{app="test"}`, "", "", 100, "backward", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"1609459200000000000"}, result.Data.Result[0].Values[0])
}

func TestQueryLoki_UpstreamErrorSurfaced(t *testing.T) {
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`parse error at line 1: unexpected token`))
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.QueryLoki(context.Background(), `{app=`, "", "", 100, "backward", 100)
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
	assert.Contains(t, err.Error(), "parse error at line 1")
}

func TestGetLokiLabels(t *testing.T) {
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasources/proxy/1/loki/api/v1/labels", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "success", "data": ["app", "env", "job"]}`))
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	labels, err := c.GetLokiLabels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "env", "job"}, labels.Data)
}

func TestGetLokiLabelValues(t *testing.T) {
	srv := newLokiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasources/proxy/1/loki/api/v1/label/app/values", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "success", "data": ["app1", "app2", "app3"]}`))
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	values, err := c.GetLokiLabelValues(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"app1", "app2", "app3"}, values.Data)
}
