// Package api provides the HTTP API layer for the dataset service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with the dataset routes and handlers from pkg/service.
//
// # Usage
//
//	p := config.NewEnvProvider()
//	if err := api.Serve(ctx, p); err != nil {
//	    log.Fatalf("server error: %v", err)
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Building the dataset cache and preloading it once at startup
//   - Setting up route handlers
//   - Delegating server lifecycle management to pkg/server
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET /              - All records, in file order
//   - GET /{guid}        - The first record whose "guid" matches
//   - POST /admin/reload - Drop the cache and reload (only with ADMIN_RELOAD=true)
//
// System Endpoints (no rate limiting):
//   - GET /health  - Dataset health, always 200
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// The fixed paths /health, /ready and /metrics take precedence over a record
// whose guid has the same value.
//
// # Configuration
//
// Settings come from the environment (and an optional .env file); see
// pkg/config. DATA_FILE_PATH is read again on every uncached request, so
// changing it takes effect without a restart.
package api
