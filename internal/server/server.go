package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"KnowledgeExtractor/internal/domain"
	"KnowledgeExtractor/internal/infrastructure/htmltext"
	"KnowledgeExtractor/internal/usecase"
)

// Deps wires the use cases and metadata the HTTP layer exposes.
type Deps struct {
	Analyzer *usecase.Analyzer
	Query    *usecase.QueryEngine
	Logger   *slog.Logger

	// Collaborator labels reported by /health ("openai"/"canned",
	// "sqlite"/"memory", ...).
	GeneratorKind string
	StoreKind     string
	TaggerKind    string

	// TemplateGlob locates the HTML page; empty disables the web UI.
	TemplateGlob string
}

// Server exposes the analysis pipeline and query engine over HTTP.
type Server struct {
	deps   Deps
	router *gin.Engine
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// New builds the gin router with all routes registered.
func New(deps Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{deps: deps, router: router}

	if deps.TemplateGlob != "" {
		router.LoadHTMLGlob(deps.TemplateGlob)
		router.GET("/", s.index)
	}
	router.POST("/analyze", s.analyze)
	router.POST("/search", s.search)
	router.GET("/analyses", s.analyses)
	router.GET("/stats", s.stats)
	router.GET("/health", s.health)

	return s
}

// Router exposes the underlying handler for http.Server and tests.
func (s *Server) Router() http.Handler {
	return s.router
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

type searchRequest struct {
	Keyword   string `json:"keyword"`
	Sentiment string `json:"sentiment"`
	Limit     int    `json:"limit"`
}

type searchResponse struct {
	Results []domain.KnowledgeRecord `json:"results"`
	Total   int                      `json:"total"`
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "text is required"})
		return
	}

	text := req.Text
	if htmltext.LooksLikeHTML(text) {
		if extracted := htmltext.ExtractText(text); extracted != "" {
			text = extracted
		}
	}

	record, err := s.deps.Analyzer.Analyze(c.Request.Context(), text)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyText) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Text cannot be empty"})
			return
		}
		s.logError("analyze failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Analysis failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid search request"})
		return
	}

	if req.Sentiment != "" && !domain.Sentiment(req.Sentiment).Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "sentiment must be positive, neutral, or negative"})
		return
	}

	criteria := domain.SearchCriteria{
		Keyword:   req.Keyword,
		Sentiment: domain.Sentiment(req.Sentiment),
		Limit:     req.Limit,
	}

	results, err := s.deps.Query.Search(c.Request.Context(), criteria)
	if err != nil {
		s.logError("search failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Search failed: " + err.Error()})
		return
	}

	snapshot, err := s.deps.Query.Stats(c.Request.Context())
	if err != nil {
		s.logError("stats failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Search failed: " + err.Error()})
		return
	}

	if results == nil {
		results = []domain.KnowledgeRecord{}
	}
	c.JSON(http.StatusOK, searchResponse{Results: results, Total: snapshot.TotalCount})
}

func (s *Server) analyses(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	results, err := s.deps.Query.Search(c.Request.Context(), domain.SearchCriteria{Limit: limit})
	if err != nil {
		s.logError("list analyses failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve analyses: " + err.Error()})
		return
	}

	snapshot, err := s.deps.Query.Stats(c.Request.Context())
	if err != nil {
		s.logError("stats failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve analyses: " + err.Error()})
		return
	}

	if results == nil {
		results = []domain.KnowledgeRecord{}
	}
	c.JSON(http.StatusOK, searchResponse{Results: results, Total: snapshot.TotalCount})
}

func (s *Server) stats(c *gin.Context) {
	snapshot, err := s.deps.Query.Stats(c.Request.Context())
	if err != nil {
		s.logError("stats failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to get stats: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services": gin.H{
			"llm":      s.deps.GeneratorKind,
			"nlp":      s.deps.TaggerKind,
			"database": s.deps.StoreKind,
		},
	})
}

func (s *Server) logError(msg string, err error) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, "error", err)
	}
}
