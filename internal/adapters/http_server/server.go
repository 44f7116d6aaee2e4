package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const defaultRequestTimeout = 15 * time.Second

type Server struct {
	mux     *chi.Mux
	timeout time.Duration
}

type Option func(*Server)

// WithRequestTimeout overrides the per-request deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{mux: chi.NewRouter(), timeout: defaultRequestTimeout}
	for _, o := range opts {
		o(s)
	}

	// middlewares must be registered before any route
	s.mux.Use(chimw.RealIP)
	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.Recoverer)
	s.mux.Use(Timeout(s.timeout))
	s.mux.Use(Metrics)
	s.mux.Use(Logger(log.Logger))

	return s
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches an extra handler (e.g. /metrics) outside the API tree.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// HTTPServer returns a net/http server for addr with the router installed.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
