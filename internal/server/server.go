// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"StockPulse/internal/analyzer"
	"StockPulse/internal/archive"
	"StockPulse/internal/cache"
	"StockPulse/internal/model"
	"StockPulse/internal/scanner"
	"StockPulse/internal/ticker"
)

// Server wires the HTTP handlers to the analysis engine.
type Server struct {
	analyzer   *analyzer.Analyzer
	scanner    *scanner.Scanner
	discoverer *ticker.Discoverer
	archive    archive.Archive
	signals    *cache.Cache[*model.Signal]
	tickers    *cache.Cache[[]string]
	limiter    *clientLimiter
	strategy   ticker.Strategy
	cacheTTL   time.Duration

	httpServer *http.Server
}

// Options collects the server's collaborators and settings.
type Options struct {
	Addr              string
	Analyzer          *analyzer.Analyzer
	Scanner           *scanner.Scanner
	Discoverer        *ticker.Discoverer
	Archive           archive.Archive
	Strategy          ticker.Strategy
	CacheTTL          time.Duration
	RequestsPerMinute int
}

// New creates the server and its routes.
func New(opts Options) *Server {
	s := &Server{
		analyzer:   opts.Analyzer,
		scanner:    opts.Scanner,
		discoverer: opts.Discoverer,
		archive:    opts.Archive,
		signals:    cache.New[*model.Signal](),
		tickers:    cache.New[[]string](),
		limiter:    newClientLimiter(opts.RequestsPerMinute),
		strategy:   opts.Strategy,
		cacheTTL:   opts.CacheTTL,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/analyze/{ticker}", s.handleAnalyze)
	mux.HandleFunc("POST /api/batch", s.handleBatch)
	mux.HandleFunc("GET /api/scanner", s.handleScannerGet)
	mux.HandleFunc("POST /api/scanner", s.handleScannerPost)
	mux.HandleFunc("GET /api/signals/{ticker}", s.handleSignals)

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.limiter.middleware(corsMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[INFO] http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// StartCacheJanitor evicts expired cache entries periodically until ctx
// is done.
func (s *Server) StartCacheJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.signals.Cleanup()
				s.tickers.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}
