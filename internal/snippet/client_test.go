package snippet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}

	u, err = parseBaseURL("https://example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want error")
	}
}

func TestClient_FetchSnippet(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotMethod = r.Method
		if r.URL.Path != "/snippet" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Snippet{Name: "Ada", Code: "print(1)", Duration: 5})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	got, err := c.FetchSnippet(ctx)
	if err != nil {
		t.Fatalf("FetchSnippet returned error: %v", err)
	}
	if got.Name != "Ada" || got.Code != "print(1)" || got.Duration != 5 {
		t.Fatalf("FetchSnippet = %#v, want Ada/print(1)/5", got)
	}
	if !got.Valid() {
		t.Fatalf("Valid() = false, want true")
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("method = %q, want GET", gotMethod)
	}
	if !strings.HasPrefix(gotUserAgent, "snipday/") {
		t.Fatalf("User-Agent = %q, want snipday/*", gotUserAgent)
	}
}

func TestClient_SubmitSendsJSONAndAcceptsEmptyBody(t *testing.T) {
	t.Parallel()

	var gotBody Submission
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submit" {
			http.Error(w, "wrong route", http.StatusNotFound)
			return
		}
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Submit(context.Background(), Submission{Name: "Ada", Code: "print(1)"}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if gotBody.Name != "Ada" || gotBody.Code != "print(1)" {
		t.Fatalf("server got %#v, want Ada/print(1)", gotBody)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
}

func TestClient_DoMergesHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	opts := RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{
			"Content-Type": {"text/plain"},
			"X-Extra":      {"1"},
		},
		Body: "raw",
	}
	if err := c.Do(context.Background(), "/anything", opts, nil); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got.Get("Content-Type") != "text/plain" {
		t.Fatalf("Content-Type = %q, want caller override text/plain", got.Get("Content-Type"))
	}
	if got.Get("X-Extra") != "1" {
		t.Fatalf("X-Extra = %q, want 1", got.Get("X-Extra"))
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("Accept = %q, want default application/json", got.Get("Accept"))
	}
}

func TestFetch_EmptyBodyYieldsZeroValue(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	got, err := Fetch[Snippet](context.Background(), c, "/snippet", RequestOptions{})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got != (Snippet{}) {
		t.Fatalf("Fetch = %#v, want zero snippet", got)
	}
	if got.Valid() {
		t.Fatalf("zero snippet should not be valid")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/snippet":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/submit":
			http.Error(w, "Submission disabled: snippet active", http.StatusForbidden)
		case "/silent":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchSnippet(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchSnippet error = %v, want decode response error", err)
	}

	err = c.Submit(context.Background(), Submission{Name: "a", Code: "b"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Submit error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Message != "Submission disabled: snippet active" {
		t.Fatalf("APIError = %#v, want 403 with server text", apiErr)
	}
	if StatusCode(err) != http.StatusForbidden {
		t.Fatalf("StatusCode = %d, want 403", StatusCode(err))
	}

	err = c.Do(context.Background(), "/silent", RequestOptions{}, nil)
	if err == nil || err.Error() != DefaultErrorMessage {
		t.Fatalf("Do error = %v, want %q", err, DefaultErrorMessage)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchSnippet(context.Background())
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("FetchSnippet error = %v, want execute request error", err)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("StatusCode = %d, want 0 for transport errors", StatusCode(err))
	}
}

func TestClient_ContextCancelAbortsRequest(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(server.URL, WithTimeout(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.FetchSnippet(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("FetchSnippet error = %v, want context deadline exceeded", err)
	}
}

func TestEncodeBody(t *testing.T) {
	r, err := encodeBody(nil)
	if err != nil || r != nil {
		t.Fatalf("encodeBody(nil) = %v, %v; want nil, nil", r, err)
	}

	r, err = encodeBody(Submission{Name: "n", Code: "c"})
	if err != nil {
		t.Fatalf("encodeBody returned error: %v", err)
	}
	raw, _ := io.ReadAll(r)
	if string(raw) != `{"name":"n","code":"c"}` {
		t.Fatalf("encodeBody = %s, want JSON submission", raw)
	}

	if _, err := encodeBody(make(chan int)); err == nil {
		t.Fatalf("encodeBody(chan) returned nil error, want error")
	}
}

func TestSnippetHelpers(t *testing.T) {
	s := Snippet{Name: " Ada ", Code: "x", Duration: 3}
	if s.Title() != "Ada's Snippet" {
		t.Fatalf("Title = %q, want Ada's Snippet", s.Title())
	}
	if s.Countdown() != 3*time.Second {
		t.Fatalf("Countdown = %v, want 3s", s.Countdown())
	}
	if (Snippet{Duration: -1}).Countdown() != 0 {
		t.Fatalf("negative duration should clamp to 0")
	}
	cases := []Snippet{
		{Name: "", Code: "x"},
		{Name: "a", Code: ""},
		{},
	}
	for _, c := range cases {
		if c.Valid() {
			t.Fatalf("Valid(%#v) = true, want false", c)
		}
	}
}
