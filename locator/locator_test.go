package locator

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func healthyBackend(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/help" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "Backend server is up and running.")
	}))
	t.Cleanup(srv.Close)

	return srv
}

func brokenBackend(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestSelectPrefersFirstCandidate(t *testing.T) {
	dev := healthyBackend(t)
	prod := healthyBackend(t)

	url, err := Select(context.Background(), testLogger(), []Candidate{
		{Name: "dev", URL: dev.URL},
		{Name: "prod", URL: prod.URL},
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, dev.URL, url)
}

func TestSelectFallsThroughToNextCandidate(t *testing.T) {
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dev.Close() // connection refused
	prod := healthyBackend(t)

	url, err := Select(context.Background(), testLogger(), []Candidate{
		{Name: "dev", URL: dev.URL},
		{Name: "prod", URL: prod.URL},
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, prod.URL, url)
}

func TestSelectRejectsWrongBody(t *testing.T) {
	// A 200 is not enough; the body has to match exactly.
	dev := brokenBackend(t, http.StatusOK, "OK")
	prod := healthyBackend(t)

	url, err := Select(context.Background(), testLogger(), []Candidate{
		{Name: "dev", URL: dev.URL},
		{Name: "prod", URL: prod.URL},
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, prod.URL, url)
}

func TestSelectRejectsNon200(t *testing.T) {
	dev := brokenBackend(t, http.StatusServiceUnavailable, "Backend server is up and running.")

	_, err := Select(context.Background(), testLogger(), []Candidate{
		{Name: "dev", URL: dev.URL},
	}, time.Second)

	require.ErrorIs(t, err, ErrNoAccessibleBackend)
}

func TestSelectNoAccessibleBackend(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	_, err := Select(context.Background(), testLogger(), []Candidate{
		{Name: "dev", URL: down.URL},
		{Name: "prod", URL: down.URL},
	}, time.Second)

	require.ErrorIs(t, err, ErrNoAccessibleBackend)
}

func TestSelectNoCandidates(t *testing.T) {
	_, err := Select(context.Background(), testLogger(), nil, time.Second)
	require.ErrorIs(t, err, ErrNoAccessibleBackend)
}

func TestSelectTrimsTrailingSlash(t *testing.T) {
	backend := healthyBackend(t)

	url, err := Select(context.Background(), testLogger(), []Candidate{
		{Name: "dev", URL: backend.URL + "/"},
	}, time.Second)

	require.NoError(t, err)
	require.Equal(t, backend.URL+"/", url)
}

func TestSelectHonorsContextCancellation(t *testing.T) {
	backend := healthyBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Select(ctx, testLogger(), []Candidate{
		{Name: "dev", URL: backend.URL},
	}, time.Second)

	require.ErrorIs(t, err, context.Canceled)
}
