// Package server provides the HTTP server shared by the dataset API.
//
// # Architecture
//
// The server wraps caller-supplied handlers with a middleware chain:
//
//   - Prometheus RED metrics labeled by route pattern
//   - API version negotiation (Accept: application/vnd.dsapi.v1+json)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Debug-level request logging
//
// Unthrottled handlers get the same chain without rate limiting.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("dsapi"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /{$}":    svc.HandleList,
//	        "GET /{guid}": svc.HandleGet,
//	    }),
//	    server.WithUnthrottledHandler("GET /health", svc.HandleHealth),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Built-in endpoints
//
// GET /ready returns 200 while serving and 503 before start and during
// shutdown. GET /metrics serves the Prometheus registry. GET / and
// GET /health have built-in handlers that are used only when the caller
// does not register those patterns.
//
// # Error Handling
//
// Errors are written with WriteError or WriteErrorFromErr as
//
//	{"detail": "Item with GUID 'x' not found"}
//
// with the structured code in the X-Error-Code header and the request id
// in X-Request-Id.
//
// # Rate Limiting
//
// Rate limited responses carry X-RateLimit-Limit, X-RateLimit-Remaining
// and X-RateLimit-Reset. Rejected requests get 429 with Retry-After.
package server
