package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tithe/config"
	"tithe/native/governance"
	"tithe/observability/logging"
)

// Governance exposes the read-only state the gateway serves. The governance
// controller satisfies it.
type Governance interface {
	PoolRate(poolID [32]byte) (uint32, error)
	Manager() ([20]byte, error)
	Guardian() ([20]byte, error)
	Pending() (governance.PendingUpdate, bool, error)
	IsPaused() (bool, error)
}

// Server is the read-only HTTP surface of one hook deployment: per-pool
// rates, governance state, pause flag, health, and prometheus metrics. It
// never mutates hook state.
type Server struct {
	gov     Governance
	logger  *slog.Logger
	limiter *rateLimiter
	router  chi.Router
}

// NewServer constructs the gateway over the supplied governance view.
func NewServer(gov Governance, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		gov:     gov,
		logger:  logger,
		limiter: newRateLimiter(defaultRequestsPerMinute, defaultBurst),
	}
	r := chi.NewRouter()
	r.Use(s.limiter.middleware)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/pools/{poolID}/fee", s.handlePoolFee)
		r.Get("/governance", s.handleGovernance)
		r.Get("/paused", s.handlePaused)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.router = r
	return s
}

// NewServerFromConfig constructs the gateway with structured JSON logging
// configured for the deployment environment.
func NewServerFromConfig(cfg *config.Config, gov Governance) *Server {
	env := ""
	if cfg != nil {
		env = cfg.Env
	}
	return NewServer(gov, logging.Setup("tithe-gateway", env))
}

// Handler returns the http handler for mounting or serving.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the gateway until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("gateway listening", "addr", addr)
	return srv.ListenAndServe()
}
