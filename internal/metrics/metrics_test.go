package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestObserveGeneration(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveGeneration("gemini", "gemini-1.5-flash", "success", 1200*time.Millisecond)
	rec.ObserveGeneration("gemini", "gemini-1.5-flash", "success", 800*time.Millisecond)
	rec.ObserveGeneration("gemini", "gemini-1.5-flash", "error", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.requests.WithLabelValues("gemini", "gemini-1.5-flash", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requests.WithLabelValues("gemini", "gemini-1.5-flash", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.duration))
}

func TestObserveCopy(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveCopy(CopyOK)
	rec.ObserveCopy(CopyOK)
	rec.ObserveCopy(CopyUnavailable)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.copies.WithLabelValues(CopyOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.copies.WithLabelValues(CopyUnavailable)))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.ObserveGeneration("gemini", "m", "success", time.Second)
	rec.ObserveCopy(CopyOK)
	assert.Nil(t, rec.Registry())

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeExposesMetrics(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := NewRecorder()
	rec.ObserveGeneration("openai", "gpt-4o-mini", "success", time.Second)

	srv, err := Serve(context.Background(), "127.0.0.1:0", rec, nil)
	require.NoError(t, err)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `missiongen_generation_requests_total{model="gpt-4o-mini",outcome="success",provider="openai"} 1`)

	resp, err = client.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close(), "close is idempotent")
}

func TestServeStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := Serve(ctx, "127.0.0.1:0", NewRecorder(), nil)
	require.NoError(t, err)

	cancel()
	select {
	case <-srv.done:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

func TestServeBadAddress(t *testing.T) {
	_, err := Serve(context.Background(), "not-an-address", NewRecorder(), nil)
	assert.Error(t, err)
}
