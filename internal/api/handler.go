package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/five82/snipday/internal/board"
	"github.com/five82/snipday/internal/snippet"
)

// Plain-text error bodies. Clients show these verbatim.
const (
	msgSnippetActive = "Submission disabled: snippet active"
	msgInvalidInput  = "Invalid input"
	msgCodeTooLong   = "Code too long"
	msgNoSnippet     = "No snippet available"
)

// Handler serves the snippet endpoints.
type Handler struct {
	board  *board.Board
	logger *slog.Logger
}

// NewHandler creates a Handler backed by b.
func NewHandler(b *board.Board, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{board: b, logger: logger}
}

// Routes builds the router with middleware and all endpoints.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(h.logger))
	r.Use(Recoverer(h.logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/healthz", h.Healthz)
	r.Get("/snippet", h.GetSnippet)
	r.Post("/submit", h.Submit)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}

// GetSnippet returns the active snippet with its remaining whole seconds.
//
// GET /snippet
func (h *Handler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.board.Current()
	if err != nil {
		http.Error(w, msgNoSnippet, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snippet.Snippet{
		Name:      entry.Name,
		Code:      entry.Code,
		Timestamp: entry.SubmittedAt,
		Duration:  int64(entry.Remaining(h.board.Now()).Seconds()),
	})
}

// Submit stores a new snippet unless one is already active. The optional
// ?expiration= query (a Go duration such as "30s") overrides the lifetime
// of this snippet only.
//
// POST /submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.board.Active() {
		http.Error(w, msgSnippetActive, http.StatusForbidden)
		return
	}

	var sub snippet.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, msgInvalidInput, http.StatusBadRequest)
		return
	}
	if len(sub.Code) > h.board.MaxCodeLength() {
		http.Error(w, msgCodeTooLong, http.StatusBadRequest)
		return
	}

	var expiration time.Duration
	if raw := r.URL.Query().Get("expiration"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid expiration time: %v", err), http.StatusBadRequest)
			return
		}
		if parsed <= 0 {
			http.Error(w, fmt.Sprintf("Invalid expiration time: %q must be positive", raw), http.StatusBadRequest)
			return
		}
		expiration = parsed
	}

	entry, err := h.board.Submit(sub.Name, sub.Code, expiration)
	if err != nil {
		status, msg := submitError(err)
		http.Error(w, msg, status)
		return
	}

	h.logger.Info("snippet submitted",
		slog.String("request_id", GetRequestID(r.Context())),
		slog.String("author", entry.Name),
		slog.Int("code_bytes", len(entry.Code)),
		slog.Duration("expiration", entry.Expiration),
	)
	w.WriteHeader(http.StatusCreated)
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
	Active bool   `json:"active"`
}

// Healthz is a liveness probe.
//
// GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Active: h.board.Active()})
}

func submitError(err error) (int, string) {
	switch {
	case errors.Is(err, board.ErrSnippetActive):
		return http.StatusForbidden, msgSnippetActive
	case errors.Is(err, board.ErrCodeTooLong):
		return http.StatusBadRequest, msgCodeTooLong
	case errors.Is(err, board.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
