package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Write("moments", "insert")
		m.Emission("all_moments")
		m.Search()
		m.RPC("/connect.feed.FeedService/Login", "OK")
	})
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.Write("moments", "insert")
	m.Write("moments", "insert")
	m.Write("comments", "delete")
	m.Search()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Writes.WithLabelValues("moments", "insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Writes.WithLabelValues("comments", "delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueries))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `connect_store_writes_total{op="insert",table="moments"} 2`)
}
