package main

import (
	"context"
	"log"

	"github.com/NVIDIA/dataset-api/pkg/api"
	"github.com/NVIDIA/dataset-api/pkg/config"
	"github.com/NVIDIA/dataset-api/pkg/logging"
)

// overridden during build with ldflags, e.g. -X main.version=1.0.0
var version = "dev"

func main() {
	// Structured from the first line; LOG_LEVEL from .env applies once
	// api.Serve reinstalls the logger with the resolved settings.
	logging.SetDefaultStructuredLogger("dsapid", version)

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	if err := api.Serve(context.Background(), config.NewEnvProvider()); err != nil {
		log.Fatal(err)
	}
}
