package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"KnowledgeExtractor/internal/config"
	"KnowledgeExtractor/internal/infrastructure/llm"
	"KnowledgeExtractor/internal/infrastructure/nlp"
	"KnowledgeExtractor/internal/infrastructure/storage"
	"KnowledgeExtractor/internal/keywords"
	"KnowledgeExtractor/internal/logging"
	"KnowledgeExtractor/internal/ports"
	"KnowledgeExtractor/internal/server"
	"KnowledgeExtractor/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	srv    *server.Server
	closer func() error
}

// New builds a runnable application instance. Missing credentials
// degrade to canned collaborators so the binary always starts.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var generator ports.Generator
	generatorKind := "canned"
	if cfg.OpenAI.APIKey != "" {
		generator = llm.NewOpenAIClient(cfg.OpenAI)
		generatorKind = "openai"
	} else {
		generator = llm.CannedGenerator{}
	}

	var store ports.RecordStore
	storeKind := "memory"
	closer := func() error { return nil }
	if cfg.Database.Path != "" {
		repo, err := storage.OpenSQLite(ctx, cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open record store: %w", err)
		}
		store = repo
		storeKind = "sqlite"
		closer = repo.Close
	} else {
		store = storage.NewMemoryRepository()
	}

	extractor := keywords.NewExtractor(
		nlp.NewProseTagger(),
		keywords.DefaultStopWords(),
		baseLogger.With("component", "keywords"),
	)

	analyzer := usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Generator: generator,
		Extractor: extractor,
		Store:     store,
		Logger:    baseLogger.With("component", "analyzer"),
	})

	templateGlob := cfg.Server.TemplateGlob
	if templateGlob != "" {
		if _, err := os.Stat("web/templates"); err != nil {
			baseLogger.Warn("templates not found, web page disabled", "glob", templateGlob)
			templateGlob = ""
		}
	}

	srv := server.New(server.Deps{
		Analyzer:      analyzer,
		Query:         usecase.NewQueryEngine(store),
		Logger:        baseLogger.With("component", "server"),
		GeneratorKind: generatorKind,
		StoreKind:     storeKind,
		TaggerKind:    "prose",
		TemplateGlob:  templateGlob,
	})

	return &Application{cfg: cfg, logger: baseLogger, srv: srv, closer: closer}, nil
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully and closes the store.
func (a *Application) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = a.closer()
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		_ = a.closer()
		return fmt.Errorf("shutdown: %w", err)
	}

	return a.closer()
}
