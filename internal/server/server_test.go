package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"KnowledgeExtractor/internal/domain"
	"KnowledgeExtractor/internal/infrastructure/llm"
	"KnowledgeExtractor/internal/infrastructure/storage"
	"KnowledgeExtractor/internal/keywords"
	"KnowledgeExtractor/internal/usecase"
)

func newTestServer() *Server {
	store := storage.NewMemoryRepository()
	analyzer := usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Generator: llm.CannedGenerator{},
		Extractor: keywords.NewExtractor(nil, nil, nil),
		Store:     store,
	})

	return New(Deps{
		Analyzer:      analyzer,
		Query:         usecase.NewQueryEngine(store),
		GeneratorKind: "canned",
		StoreKind:     "memory",
		TaggerKind:    "none",
	})
}

func postJSON(t *testing.T, srv *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func getPath(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	rec := postJSON(t, srv, "/analyze", map[string]string{
		"text": "kubernetes clusters schedule kubernetes workloads across kubernetes nodes",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var record domain.KnowledgeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(record.Topics) != 3 {
		t.Fatalf("expected 3 topics, got %v", record.Topics)
	}
	if !record.Sentiment.Valid() {
		t.Fatalf("invalid sentiment: %s", record.Sentiment)
	}
	if record.CreatedAt.IsZero() {
		t.Fatalf("created_at not stamped")
	}
}

func TestAnalyzeEndpointRejectsEmptyText(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	if rec := postJSON(t, srv, "/analyze", map[string]string{"text": ""}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing text, got %d", rec.Code)
	}
	if rec := postJSON(t, srv, "/analyze", map[string]string{"text": "   "}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blank text, got %d", rec.Code)
	}
}

func TestAnalyzeEndpointReducesHTML(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	rec := postJSON(t, srv, "/analyze", map[string]string{
		"text": "<html><body><p>satellite satellite satellite launch</p><script>evil()</script></body></html>",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var record domain.KnowledgeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(record.Keywords) == 0 || record.Keywords[0] != "satellite" {
		t.Fatalf("expected html reduced to text before extraction, got %v", record.Keywords)
	}
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	for _, text := range []string{"alpha mission report", "beta mission report"} {
		if rec := postJSON(t, srv, "/analyze", map[string]string{"text": text}); rec.Code != http.StatusOK {
			t.Fatalf("seed analyze failed: %d", rec.Code)
		}
	}

	rec := postJSON(t, srv, "/search", map[string]any{"keyword": "alpha"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []domain.KnowledgeRecord `json:"results"`
		Total   int                      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if resp.Total != 2 {
		t.Fatalf("expected total 2, got %d", resp.Total)
	}
}

func TestSearchEndpointRejectsUnknownSentiment(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	rec := postJSON(t, srv, "/search", map[string]string{"sentiment": "angry"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAnalysesAndStatsEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	if rec := postJSON(t, srv, "/analyze", map[string]string{"text": "one lonely record"}); rec.Code != http.StatusOK {
		t.Fatalf("seed analyze failed: %d", rec.Code)
	}

	rec := getPath(srv, "/analyses?limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if rec := getPath(srv, "/analyses?limit=0"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-positive limit, got %d", rec.Code)
	}

	rec = getPath(srv, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snapshot domain.StatsSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if snapshot.TotalCount != 1 {
		t.Fatalf("expected total 1, got %d", snapshot.TotalCount)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	rec := getPath(srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var health struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("unexpected status: %s", health.Status)
	}
	if health.Services["llm"] != "canned" || health.Services["database"] != "memory" {
		t.Fatalf("unexpected services: %v", health.Services)
	}
}
