// Package locator picks which AssetMart backend the client should talk to.
package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// healthPath is the backend's unauthenticated liveness route.
const healthPath = "/users/help"

// healthBody is the exact payload a healthy backend answers with. A 200 with
// any other body counts as a miss.
const healthBody = "Backend server is up and running."

const defaultProbeTimeout = 3 * time.Second

// ErrNoAccessibleBackend is returned when every candidate failed the probe.
var ErrNoAccessibleBackend = errors.New("no accessible backend")

// Candidate is one backend base URL to try, in priority order. Name is only
// used for logging.
type Candidate struct {
	Name string
	URL  string
}

// Select probes candidates in order and returns the base URL of the first
// one that passes the health check. Callers put the dev backend ahead of
// prod so a reachable dev server always wins. Probe failures are logged and
// skipped; only when the whole list is exhausted does Select give up.
func Select(ctx context.Context, logger *slog.Logger, candidates []Candidate, timeout time.Duration) (string, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	client := &http.Client{
		Timeout: timeout,
	}

	for _, c := range candidates {
		if err := probe(ctx, client, c.URL); err != nil {
			logger.Warn("Backend probe failed",
				slog.String("backend", c.Name),
				slog.String("url", c.URL),
				slog.String("error", err.Error()))

			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		logger.Info("Backend selected",
			slog.String("backend", c.Name),
			slog.String("url", c.URL))
		return c.URL, nil
	}

	return "", ErrNoAccessibleBackend
}

func probe(ctx context.Context, client *http.Client, baseURL string) error {
	healthURL := strings.TrimSuffix(baseURL, "/") + healthPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return err
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	if string(body) != healthBody {
		return fmt.Errorf("unexpected health response %q", body)
	}

	return nil
}
