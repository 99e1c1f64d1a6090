package main

import (
	"fmt"
	"os"

	"github.com/clusterview-dev/clusterview/internal/config"
	"github.com/clusterview-dev/clusterview/internal/devserver"
	"github.com/clusterview-dev/clusterview/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	srv, err := devserver.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create dev server")
	}

	log.Info().Msg("Starting ClusterView dev server (demo credentials: admin/admin123, viewer/viewer123)")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Dev server failed to start")
	}
}
