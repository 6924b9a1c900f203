// Package server exposes the engine over HTTP: JSON endpoints under /api/v1,
// a websocket console, a health check and Prometheus metrics.
package server

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adacomputing/ada-engine/internal/ledger"
	"github.com/adacomputing/ada-engine/internal/orchestrator"
)

// #endregion

// #region server-struct

// Ledger is the read side of the ledger used by the history and lexicon
// endpoints. *ledger.Store satisfies it.
type Ledger interface {
	Recent(ctx context.Context, limit int) ([]ledger.Entry, error)
	Get(ctx context.Context, id string) (ledger.Entry, error)
	Lexicon(ctx context.Context, entity string) (ledger.LexiconEntry, error)
	ListLexicon(ctx context.Context, limit int) ([]ledger.LexiconEntry, error)
}

var _ Ledger = (*ledger.Store)(nil)

// Config wires a Server. Ledger and Gatherer are optional; the endpoints that
// need them answer 503 without them.
type Config struct {
	Orchestrator *orchestrator.Orchestrator
	Ledger       Ledger
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	Version      string
}

// Server routes HTTP requests to the orchestrator and ledger.
type Server struct {
	orch     *orchestrator.Orchestrator
	ledger   Ledger
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	version  string
	router   *mux.Router
	upgrader websocket.Upgrader
}

// #endregion

// #region constructor

// New builds the router. A nil Orchestrator is replaced with one that has no
// provider and no store.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	orch := cfg.Orchestrator
	if orch == nil {
		orch = orchestrator.New(orchestrator.Config{Logger: logger})
	}
	s := &Server{
		orch:     orch,
		ledger:   cfg.Ledger,
		gatherer: cfg.Gatherer,
		logger:   logger.With("component", "http"),
		version:  cfg.Version,
		router:   mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

const apiPrefix = "/api/v1"

func (s *Server) routes() {
	s.router.Use(recoveryMiddleware(s.logger), loggingMiddleware(s.logger))

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// Registered flat on the root router so a wrong method answers 405.
	api := func(path string, h http.HandlerFunc, method string) {
		s.router.HandleFunc(apiPrefix+path, h).Methods(method)
	}
	api("/solve", s.handleSolve, http.MethodPost)
	api("/ask", s.handleAsk, http.MethodPost)
	api("/sessions/{id}/history", s.handleSessionHistory, http.MethodGet)
	api("/sessions/{id}", s.handleResetSession, http.MethodDelete)
	api("/analyze/{word}", s.handleAnalyze, http.MethodGet)
	api("/glyphs", s.handleGlyphs, http.MethodGet)
	api("/trajectory", s.handleTrajectory, http.MethodGet)
	api("/history", s.handleHistory, http.MethodGet)
	api("/history/{id}", s.handleHistoryEntry, http.MethodGet)
	api("/lexicon", s.handleLexicon, http.MethodGet)
	api("/lexicon/{entity}", s.handleLexiconEntry, http.MethodGet)
	api("/console", s.handleConsole, http.MethodGet)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// #endregion

// #region lifecycle

// Serve accepts connections on l until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // long for provider calls
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", l.Addr().String())
		errc <- srv.Serve(l)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}

// #endregion
