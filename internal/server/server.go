package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/agbru/sumbench/internal/errors"
	"github.com/agbru/sumbench/internal/logging"
	"github.com/agbru/sumbench/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves /metrics and /healthz.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	http     *http.Server
	listener net.Listener
}

// New builds a server bound to addr that exposes rec.
func New(addr string, rec *metrics.Recorder, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop{}
	}
	s := &Server{
		addr:     addr,
		metrics:  NewMetrics(rec),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))
	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Listen binds the configured address and returns the bound address,
// which differs from the configured one when the port is 0.
func (s *Server) Listen() (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", apperrors.WrapError(err, "metrics server listen on %s", s.addr)
	}
	s.listener = ln
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

// Serve blocks serving requests until ctx is done, then shuts down
// gracefully. Listen must be called first.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("metrics server: Serve called before Listen")
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- s.http.Serve(s.listener) }()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return apperrors.WrapError(err, "metrics server shutdown")
	}
	s.logger.Debug("metrics server stopped")
	return nil
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path)
		next(w, r)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
