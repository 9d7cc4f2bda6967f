package metrics

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thetafocal/focal"
)

// scrape renders the default registry in text format.
func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestRecorder(t *testing.T) {
	var r Recorder
	s := &focal.Sample{Optimal: 12, Forward: focal.SearchStats{Settled: 100}, Reverse: focal.SearchStats{Settled: 90}}
	r.SampleAccepted("recorder-test", s, 3*time.Millisecond)
	r.SampleRejected("recorder-test", "unreachable")
	r.SampleRejected("recorder-test", "unreachable")

	body := scrape(t)
	require.Contains(t, body, `thetafocal_samples_accepted_total{split="recorder-test"} 1`)
	require.Contains(t, body, `thetafocal_samples_rejected_total{reason="unreachable",split="recorder-test"} 2`)
	require.Contains(t, body, `thetafocal_compose_duration_seconds_count{split="recorder-test"} 1`)
	require.Contains(t, body, "thetafocal_search_settled_states_bucket")
	require.Contains(t, body, "thetafocal_optimal_cost_bucket")
}

func TestHandler(t *testing.T) {
	Recorder{}.SampleRejected("handler-test", "degenerate")
	require.Contains(t, scrape(t), `thetafocal_samples_rejected_total{reason="degenerate",split="handler-test"} 1`)
}

func TestServe(t *testing.T) {
	require.NoError(t, Serve(context.Background(), ""))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0") }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
