package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NavyNewsWatch/internal/domain"
)

type fakeRunner struct {
	report domain.RunReport
	err    error
}

func (f *fakeRunner) Run(ctx context.Context) (domain.RunReport, error) {
	return f.report, f.err
}

type fakeStore struct {
	articles []domain.StoredArticle
	err      error
}

func (f *fakeStore) UpsertArticles(ctx context.Context, rows []domain.StoredArticle) error {
	return nil
}

func (f *fakeStore) ListArticles(ctx context.Context) ([]domain.StoredArticle, error) {
	return f.articles, f.err
}

func TestIngestResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		report      domain.RunReport
		err         error
		wantStatus  int
		wantSuccess bool
	}{
		{
			name:        "success",
			report:      domain.RunReport{Success: true, Processed: 7, Message: "processed 7 articles"},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:       "no articles",
			report:     domain.RunReport{Success: false, Message: "no articles found"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "fatal error",
			err:        errors.New("upsert articles: connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := &Handlers{
				Pipeline: &fakeRunner{report: tt.report, err: tt.err},
				Store:    &fakeStore{},
				Started:  time.Now(),
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/ingest", nil)
			h.Ingest()(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.err != nil {
				var body errorResponse
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body.Details == "" {
					t.Fatal("error response lacks details")
				}
				return
			}

			var body runResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success != tt.wantSuccess {
				t.Fatalf("success = %v, want %v", body.Success, tt.wantSuccess)
			}
			if body.Message != tt.report.Message {
				t.Fatalf("message = %q, want %q", body.Message, tt.report.Message)
			}
		})
	}
}

func TestArticlesEndpoint(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	h := &Handlers{
		Pipeline: &fakeRunner{},
		Store: &fakeStore{articles: []domain.StoredArticle{
			{ID: 2, URL: "https://example.org/b", Title: "newest", PublishedAt: now, CreatedAt: now},
			{ID: 1, URL: "https://example.org/a", Title: "older", PublishedAt: now, CreatedAt: now.Add(-time.Hour)},
		}},
		Started: time.Now(),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	h.Articles()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body []articleResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(body))
	}
	if body[0].Title != "newest" {
		t.Fatalf("unexpected first article: %+v", body[0])
	}
}

func TestArticlesEndpointStoreError(t *testing.T) {
	t.Parallel()

	h := &Handlers{
		Pipeline: &fakeRunner{},
		Store:    &fakeStore{err: errors.New("query articles: closed pool")},
		Started:  time.Now(),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	h.Articles()(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := &Handlers{Pipeline: &fakeRunner{}, Store: &fakeStore{}, Started: time.Now().Add(-time.Minute)}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.Healthz()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" || body.UptimeSeconds <= 0 {
		t.Fatalf("unexpected health body: %+v", body)
	}
}
