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
	"net/http"
	"time"

	"github.com/NVIDIA/dataset-api/pkg/defaults"
	"golang.org/x/time/rate"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// API handlers keyed by ServeMux pattern (e.g. "GET /{id}").
	// They run behind the full middleware chain, rate limiting included.
	Handlers map[string]http.HandlerFunc

	// Unthrottled handlers keyed by ServeMux pattern. Same middleware as
	// Handlers except rate limiting, so health checks are never throttled.
	UnthrottledHandlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           defaults.ServerHost,
		Port:              defaults.ServerPort,
		RateLimit:         defaults.ServerRateLimit,
		RateLimitBurst:    defaults.ServerRateLimitBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName sets the server name reported by the default root handler.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported by the default root handler.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds API handlers. Later calls add to, and may replace,
// handlers from earlier ones.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for pattern, h := range handlers {
			s.config.Handlers[pattern] = h
		}
	}
}

// WithUnthrottledHandler adds a handler that bypasses rate limiting.
func WithUnthrottledHandler(pattern string, h http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.UnthrottledHandlers == nil {
			s.config.UnthrottledHandlers = make(map[string]http.HandlerFunc)
		}
		s.config.UnthrottledHandlers[pattern] = h
	}
}

// WithConfig replaces the whole configuration. Apply it before any option
// that modifies individual fields.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithAddress sets the listen host and port.
func WithAddress(host string, port int) Option {
	return func(s *Server) {
		s.config.Address = host
		s.config.Port = port
	}
}

// WithRateLimit sets the sustained request rate and burst size.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		s.config.RateLimit = rate.Limit(limit)
		s.config.RateLimitBurst = burst
	}
}

// WithShutdownTimeout sets how long Run waits for in-flight requests
// when shutting down.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.config.ShutdownTimeout = d
		}
	}
}
