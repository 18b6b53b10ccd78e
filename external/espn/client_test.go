package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
	"github.com/gamedayhq/gameday/internal/platform/logging"
	"github.com/gamedayhq/gameday/internal/platform/resilience"
	"github.com/gamedayhq/gameday/internal/usecase"
)

func mustStrategy(t *testing.T, key string) sport.Strategy {
	t.Helper()
	s, ok := sport.Lookup(key)
	if !ok {
		t.Fatalf("unknown sport %q", key)
	}
	return s
}

func newTestClient(baseURL string, maxRetries int, breaker resilience.BreakerConfig) *Client {
	return NewClient(ClientConfig{
		SiteBaseURL: baseURL,
		WebBaseURL:  baseURL,
		Timeout:     2 * time.Second,
		MaxRetries:  maxRetries,
		Logger:      logging.NewNop(),
		Breaker:     breaker,
	})
}

func TestScoreboardDecodesPayload(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[{"id":"401585601"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.BreakerConfig{})
	doc, err := client.Scoreboard(context.Background(), mustStrategy(t, "nba"))
	if err != nil {
		t.Fatalf("scoreboard: %v", err)
	}

	if gotPath != "/basketball/nba/scoreboard" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAccept != "application/json" {
		t.Fatalf("unexpected accept header %q", gotAccept)
	}
	events := fieldpath.Slice(doc, "events")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestExecuteRequestRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 1, resilience.BreakerConfig{})
	if _, err := client.Scoreboard(context.Background(), mustStrategy(t, "nfl")); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
}

func TestExecuteRequestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3, resilience.BreakerConfig{})
	if _, err := client.TeamProfile(context.Background(), mustStrategy(t, "mlb"), "10"); err == nil {
		t.Fatal("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("404 must not retry, got %d requests", got)
	}
}

func TestBreakerRejectsAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.BreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	if _, err := client.Scoreboard(context.Background(), mustStrategy(t, "nba")); err == nil {
		t.Fatal("expected upstream failure")
	}
	_, err := client.TeamRoster(context.Background(), mustStrategy(t, "nba"), "10")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency-unavailable from open breaker, got %v", err)
	}
}

func TestGetJSONRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.BreakerConfig{})
	if _, err := client.Athlete(context.Background(), mustStrategy(t, "nba"), "3112335"); err == nil {
		t.Fatal("expected decode error")
	}
}
