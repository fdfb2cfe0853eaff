package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

// counterValue returns the fetch_total sample for the given labels.
func counterValue(t *testing.T, m *Metrics, kind, outcome string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "mcpdoc_fetch_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["kind"] == kind && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch(domain.SourceRemote, "ok", 20*time.Millisecond)
	m.ObserveFetch(domain.SourceRemote, "ok", 30*time.Millisecond)
	m.ObserveFetch(domain.SourceRemote, "denied", time.Millisecond)
	m.ObserveFetch(domain.SourceLocal, "read_error", time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, m, "remote", "ok"))
	assert.Equal(t, 1.0, counterValue(t, m, "remote", "denied"))
	assert.Equal(t, 1.0, counterValue(t, m, "local", "read_error"))
	assert.Equal(t, 0.0, counterValue(t, m, "local", "ok"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveFetch(domain.SourceRemote, "ok", 50*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `mcpdoc_fetch_total{kind="remote",outcome="ok"} 1`)
	assert.Contains(t, text, `mcpdoc_fetch_duration_seconds_count{kind="remote"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.ObserveFetch(domain.SourceRemote, "ok", time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, a, "remote", "ok"))
	assert.Equal(t, 0.0, counterValue(t, b, "remote", "ok"))
}
