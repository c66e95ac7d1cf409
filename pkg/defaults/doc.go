// Package defaults provides centralized configuration constants for the dataset API.
//
// This package defines timeout values, size limits, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Dataset defaults: default data file path and size limit
//   - Server defaults: listen address, port, rate limits
//   - Server timeouts: For HTTP server configuration
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/dataset-api/pkg/defaults"
//
//	srv := &http.Server{ReadTimeout: defaults.ServerReadTimeout}
//
// # Timeout Guidelines
//
// When choosing timeout values:
//
//   - Handlers: a dataset load is one file read plus one JSON parse, so
//     the server write timeout bounds it
//   - Server shutdown: 30s for graceful shutdown, overridable to match the
//     Kubernetes termination grace period
package defaults
