// Package server exposes the console page, its JSON API, the live state
// websocket and the hunt archive over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"echolens/internal/catalog"
	"echolens/internal/config"
	"echolens/internal/fetchers"
	"echolens/internal/hunt"
	"echolens/internal/llm"
	"echolens/internal/logger"
	"echolens/internal/mocks"
	"echolens/internal/narrative"
	"echolens/internal/reports"
	"echolens/internal/storage"
	"echolens/internal/view"
)

const (
	mockPrefix      = "/mock"
	factFeedLimit   = 20
	shutdownTimeout = 10 * time.Second
)

// Server represents the main application server
type Server struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Facts   *catalog.Facts
	Fetcher *fetchers.DataFetcher
	Storage storage.StorageClient
	Reports *reports.ReportService
	Mock    *mocks.Classifier
	Version string

	renderer *view.Renderer
	sessions *sessionStore
	limiter  *rate.Limiter
	upgrader websocket.Upgrader
	log      *logger.Logger
}

// NewServer wires every component from configuration
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log := logger.GetGlobalLogger().WithComponent("server")

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	predictURL, csvURL := cfg.PredictURL(), cfg.CSVURL()
	var mock *mocks.Classifier
	if cfg.MockupMode {
		mock = mocks.NewClassifier(time.Now().UnixNano())
		base := "http://127.0.0.1:" + cfg.Port + mockPrefix
		predictURL, csvURL = base+cfg.PredictPath, base+cfg.CSVPath
		log.Info("Mockup mode enabled - classifying with the built-in stand-in", map[string]interface{}{"url": base})
	}

	s := &Server{
		Config:  cfg,
		Catalog: cat,
		Facts:   catalog.DefaultFacts(),
		Fetcher: fetchers.NewDataFetcher(fetchers.Options{
			PredictURL: predictURL,
			CSVURL:     csvURL,
			Timeout:    cfg.RequestTimeout,
			RetryCount: cfg.RetryCount,
		}),
		Mock:     mock,
		Version:  config.GetVersion(),
		renderer: renderer,
		sessions: newSessionStore(sessionIdleTimeout),
		log:      log,
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	if cfg.ArchiveEnabled {
		client, err := storage.NewStorageClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		narrator := llm.NewNarrator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		s.Storage = client
		s.Reports = reports.NewReportService(client, narrator, s.Version)
		log.Info("Hunt archive enabled", map[string]interface{}{
			"mode":      cfg.DeploymentMode,
			"llm":       narrator.UsesModel(),
			"local_dir": cfg.LocalReportsDir,
		})
	}

	if cfg.FactsFeedURL != "" {
		s.loadFactFeed(ctx)
	}

	return s, nil
}

func (s *Server) loadFactFeed(ctx context.Context) {
	facts, err := s.Fetcher.FetchFacts(ctx, s.Config.FactsFeedURL, factFeedLimit)
	if err != nil {
		s.log.Warn("Fact feed unavailable, using built-in facts", map[string]interface{}{"error": err.Error()})
		return
	}
	added := s.Facts.Extend(facts...)
	s.log.Infof("Loaded %d facts from feed", added)
}

// newConsole creates the console of a new browser session
func (s *Server) newConsole() *hunt.Console {
	cfg := hunt.Config{
		Catalog:     s.Catalog,
		Classifier:  s.Fetcher,
		Sequencer:   narrative.NewSequencer(s.Config.NarrativeInterval),
		RevealDelay: s.Config.RevealDelay,
	}
	if s.Reports != nil {
		cfg.Recorder = s.Reports
	}
	return hunt.NewConsole(cfg)
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))))
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/systems", s.HandleSystems)
	mux.HandleFunc("/api/state", s.HandleState)
	mux.HandleFunc("/api/hunt", s.rateLimited(s.HandleHunt))
	mux.HandleFunc("/api/upload", s.rateLimited(s.HandleUpload))
	mux.HandleFunc("/api/fact", s.HandleFact)
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/reports/", s.HandleReportFile)
	if s.Mock != nil {
		mux.Handle(mockPrefix+"/", http.StripPrefix(mockPrefix, s.Mock))
	}

	// catch-all
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Handler returns the routes wrapped in request logging
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.SetupRoutes())
}

// Start serves until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", map[string]interface{}{"port": s.Config.Port, "version": s.Version})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close ends all sessions, waits for pending archive writes and releases storage
func (s *Server) Close() error {
	s.sessions.closeAll()
	if s.Reports != nil {
		s.Reports.Wait()
	}
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
