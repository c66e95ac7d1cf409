// Package config resolves service settings from the process environment.
//
// Settings come from environment variables, optionally seeded from a .env
// file in the working directory, and are read through spf13/viper with
// AutomaticEnv so every lookup sees the current environment. The dataset
// cache depends only on the Provider interface, which lets it re-resolve
// the data file path on each uncached request and lets tests substitute a
// StaticProvider without touching the environment.
//
// # Environment Variables
//
//   - DATA_FILE_PATH: path to the JSON data file (default: data.json)
//   - HOST: listen host (default: 0.0.0.0)
//   - PORT: listen port (default: 3000)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - RATE_LIMIT, RATE_LIMIT_BURST: API token bucket (default: 100, 200)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown budget (default: 30)
//   - ADMIN_RELOAD: expose POST /admin/reload (default: false)
//   - MAX_DATA_FILE_BYTES: data file size limit (default: 64 MiB)
//   - API_TITLE, API_VERSION: values reported on the service index
package config
