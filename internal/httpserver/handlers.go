package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"NavyNewsWatch/internal/domain"
	"NavyNewsWatch/internal/ports"
)

// Runner executes one ingestion run.
type Runner interface {
	Run(ctx context.Context) (domain.RunReport, error)
}

// Handlers bundles the endpoint dependencies.
type Handlers struct {
	Pipeline Runner
	Store    ports.ArticleStore
	Logger   *slog.Logger
	Started  time.Time
}

type runResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type articleResponse struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Ingest triggers one synchronous pipeline run. Concurrent calls may run
// the pipeline redundantly; the url conflict policy in the store keeps that
// harmless.
func (h *Handlers) Ingest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.Pipeline.Run(r.Context())
		if err != nil {
			h.error("ingestion run failed", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "ingestion failed",
				Details: err.Error(),
			})
			return
		}

		status := http.StatusOK
		if !report.Success {
			status = http.StatusNotFound
		}
		writeJSON(w, status, runResponse{Success: report.Success, Message: report.Message})
	}
}

// Articles serves the stored rows, newest ingestion first.
func (h *Handlers) Articles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articles, err := h.Store.ListArticles(r.Context())
		if err != nil {
			h.error("list articles failed", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "list articles failed",
				Details: err.Error(),
			})
			return
		}

		out := make([]articleResponse, 0, len(articles))
		for _, a := range articles {
			out = append(out, articleResponse{
				ID:          a.ID,
				URL:         a.URL,
				Title:       a.Title,
				Description: a.Description,
				ImageURL:    a.ImageURL,
				PublishedAt: a.PublishedAt,
				CreatedAt:   a.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Healthz reports liveness.
func (h *Handlers) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(h.Started).Seconds(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) error(msg string, err error) {
	if h.Logger != nil {
		h.Logger.Error(msg, "error", err)
	}
}
