package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/snipday/internal/board"
	"github.com/five82/snipday/internal/snippet"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T) (http.Handler, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	b := board.New(10*time.Second, 500, board.WithClock(clock.Now))
	return NewHandler(b, quietLogger()).Routes([]string{"*"}), clock
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetSnippet_NoneAvailable(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/snippet", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "No snippet available" {
		t.Fatalf("body = %q, want %q", got, "No snippet available")
	}
}

func TestSubmitThenGet(t *testing.T) {
	h, clock := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/submit", `{"name":"Ada","code":"print(1)"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}

	clock.Advance(4*time.Second + 500*time.Millisecond)
	rec = do(t, h, http.MethodGet, "/snippet", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got snippet.Snippet
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Name != "Ada" || got.Code != "print(1)" {
		t.Fatalf("snippet = %#v, want Ada/print(1)", got)
	}
	if got.Duration != 5 {
		t.Fatalf("duration = %d, want 5 (whole seconds remaining)", got.Duration)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp missing")
	}

	clock.Advance(6 * time.Second)
	if rec := do(t, h, http.MethodGet, "/snippet", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after expiry, got %d", rec.Code)
	}
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"bad json", "/submit", `{"name":`, http.StatusBadRequest, "Invalid input"},
		{"blank fields", "/submit", `{"name":"","code":""}`, http.StatusBadRequest, "Invalid input"},
		{"code too long", "/submit", `{"name":"Ada","code":"` + strings.Repeat("x", 501) + `"}`, http.StatusBadRequest, "Code too long"},
		{"escape sequence", "/submit", `{"name":"Eve\u001b]0;owned\u0007","code":"x"}`, http.StatusBadRequest, "Invalid input"},
		{"bad expiration", "/submit?expiration=soon", `{"name":"Ada","code":"x"}`, http.StatusBadRequest, "Invalid expiration time:"},
		{"negative expiration", "/submit?expiration=-5s", `{"name":"Ada","code":"x"}`, http.StatusBadRequest, "Invalid expiration time:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t)
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.wantBody) {
				t.Fatalf("body = %q, want prefix %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSubmit_ForbiddenWhileActive(t *testing.T) {
	h, clock := newTestRouter(t)

	if rec := do(t, h, http.MethodPost, "/submit", `{"name":"Ada","code":"x"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first submit: expected 201, got %d", rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/submit", `{"name":"Grace","code":"y"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "Submission disabled: snippet active" {
		t.Fatalf("body = %q", got)
	}

	clock.Advance(10 * time.Second)
	if rec := do(t, h, http.MethodPost, "/submit", `{"name":"Grace","code":"y"}`); rec.Code != http.StatusCreated {
		t.Fatalf("submit after expiry: expected 201, got %d", rec.Code)
	}
}

func TestSubmit_ExpirationOverride(t *testing.T) {
	h, clock := newTestRouter(t)

	if rec := do(t, h, http.MethodPost, "/submit?expiration=30s", `{"name":"Ada","code":"x"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	clock.Advance(20 * time.Second)
	rec := do(t, h, http.MethodGet, "/snippet", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected snippet still active, got %d", rec.Code)
	}
	var got snippet.Snippet
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Duration != 10 {
		t.Fatalf("duration = %d, want 10", got.Duration)
	}
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" || response.Active {
		t.Fatalf("response = %#v", response)
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)
	if rec := do(t, h, http.MethodDelete, "/snippet", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

// The snipday client talks to this router end to end.
func TestClientAgainstRouter(t *testing.T) {
	h, clock := newTestRouter(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := snippet.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	if _, err := client.FetchSnippet(ctx); snippet.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("FetchSnippet on empty board = %v, want 404", err)
	}
	if err := client.Submit(ctx, snippet.Submission{Name: "Ada", Code: "print(1)"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got, err := client.FetchSnippet(ctx)
	if err != nil {
		t.Fatalf("FetchSnippet: %v", err)
	}
	if !got.Valid() || got.Title() != "Ada's Snippet" || got.Duration != 10 {
		t.Fatalf("snippet = %#v", got)
	}

	err = client.Submit(ctx, snippet.Submission{Name: "Grace", Code: "y"})
	var apiErr *snippet.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden || apiErr.Message != "Submission disabled: snippet active" {
		t.Fatalf("Submit while active = %v", err)
	}

	clock.Advance(10 * time.Second)
	if _, err := client.FetchSnippet(ctx); snippet.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("FetchSnippet after expiry = %v, want 404", err)
	}
}
