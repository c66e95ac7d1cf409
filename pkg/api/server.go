package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/dataset-api/pkg/config"
	"github.com/NVIDIA/dataset-api/pkg/dataset"
	"github.com/NVIDIA/dataset-api/pkg/logging"
	"github.com/NVIDIA/dataset-api/pkg/server"
	"github.com/NVIDIA/dataset-api/pkg/service"
)

const (
	name           = "dsapi"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/dataset-api/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Provider supplies both the live data path and the full settings snapshot.
type Provider interface {
	config.Provider
	Settings() *config.Settings
}

// Serve starts the API server and blocks until ctx is canceled or a
// termination signal arrives.
func Serve(ctx context.Context, p Provider) error {
	settings := p.Settings()

	logging.SetDefaultStructuredLoggerWithLevel(name, version, settings.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"address", settings.Address(),
	)

	s, cache := New(ctx, p)
	defer cache.Close()

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// New wires the cache, service and server from p and preloads the dataset.
// A failed preload is logged; the server still starts and every request
// retries the load.
func New(ctx context.Context, p Provider) (*server.Server, *dataset.Cache) {
	settings := p.Settings()

	cache := dataset.NewCache(p, dataset.WithLoader(
		dataset.NewLoader(dataset.WithMaxSize(settings.MaxDataFileBytes)),
	))

	if ds, err := cache.GetDefault(ctx); err != nil {
		slog.Error("startup data load failed, continuing",
			"path", settings.DataFilePath,
			"error", err,
		)
	} else {
		slog.Info("startup data load complete", "items", ds.Len())
	}

	svc := service.New(cache)

	s := server.New(
		server.WithName(settings.APITitle),
		server.WithVersion(settings.APIVersion),
		server.WithAddress(settings.Host, settings.Port),
		server.WithRateLimit(settings.RateLimit, settings.RateLimitBurst),
		server.WithShutdownTimeout(settings.ShutdownTimeout),
		server.WithHandler(Routes(svc, settings.AdminReload)),
		server.WithUnthrottledHandler("GET /health", svc.HandleHealth),
	)

	return s, cache
}

// Routes returns the API routes served behind rate limiting.
// The reload route is included only when adminReload is set.
func Routes(svc *service.Service, adminReload bool) map[string]http.HandlerFunc {
	r := map[string]http.HandlerFunc{
		"GET /{$}":    svc.HandleList,
		"GET /{guid}": svc.HandleGet,
	}
	if adminReload {
		r["POST /admin/reload"] = svc.HandleReload
	}
	return r
}
