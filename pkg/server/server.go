// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"syscall"

	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
	"github.com/NVIDIA/dataset-api/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	patternRoot    = "GET /{$}"
	patternHealth  = "GET /health"
	patternReady   = "GET /ready"
	patternMetrics = "GET /metrics"
)

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
	routes      []string
}

// New creates a new server instance with the given options.
func New(opts ...Option) *Server {
	s := &Server{
		config: NewConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(s.config.Address, strconv.Itoa(s.config.Port)),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

// setupRoutes configures all HTTP routes and middleware.
// /ready and /metrics are always served by the server itself; / and
// /health fall back to built-in handlers when no caller handler claims them.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	claimed := make(map[string]bool)

	for pattern, h := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(h))
		claimed[pattern] = true
	}
	for pattern, h := range s.config.UnthrottledHandlers {
		if claimed[pattern] {
			slog.Warn("unthrottled handler shadowed by API handler", "pattern", pattern)
			continue
		}
		mux.HandleFunc(pattern, s.withUnthrottledMiddleware(h))
		claimed[pattern] = true
	}

	if !claimed[patternRoot] {
		mux.HandleFunc(patternRoot, s.withMiddleware(s.handleDefault))
		claimed[patternRoot] = true
	}
	if !claimed[patternHealth] {
		mux.HandleFunc(patternHealth, s.withUnthrottledMiddleware(s.handleHealth))
		claimed[patternHealth] = true
	}
	mux.HandleFunc(patternReady, s.withUnthrottledMiddleware(s.handleReady))
	mux.Handle(patternMetrics, promhttp.Handler())
	claimed[patternReady] = true
	claimed[patternMetrics] = true

	s.routes = make([]string, 0, len(claimed))
	for pattern := range claimed {
		s.routes = append(s.routes, pattern)
	}
	sort.Strings(s.routes)

	return s.withFallback(mux)
}

// withFallback answers requests that match no route with the same JSON
// error body as the handlers. The mux still decides between 404 and 405
// and sets Allow; redirects pass through untouched.
func (s *Server) withFallback(mux *http.ServeMux) http.Handler {
	unmatched := s.withUnthrottledMiddleware(func(w http.ResponseWriter, r *http.Request) {
		h, _ := mux.Handler(r)
		rec := &statusRecorder{header: w.Header()}
		h.ServeHTTP(rec, r)

		switch rec.status {
		case http.StatusMethodNotAllowed:
			WriteError(w, r, http.StatusMethodNotAllowed, dserrors.ErrCodeMethodNotAllowed, "Method Not Allowed")
		case http.StatusNotFound:
			WriteError(w, r, http.StatusNotFound, dserrors.ErrCodeNotFound, "Not Found")
		default:
			h.ServeHTTP(w, r)
		}
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		unmatched(w, r)
	})
}

// Handler returns the fully wired root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Routes returns the registered route patterns, sorted.
func (s *Server) Routes() []string {
	out := make([]string, len(s.routes))
	copy(out, s.routes)
	return out
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports whether the server is accepting traffic.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Run listens on the configured address and serves until ctx is canceled
// or SIGINT/SIGTERM is received, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening",
			"name", s.config.Name,
			"version", s.config.Version,
			"address", ln.Addr().String(),
			"rateLimit", float64(s.config.RateLimit),
			"rateLimitBurst", s.config.RateLimitBurst,
		)
		s.SetReady(true)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
