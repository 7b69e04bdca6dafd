package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/blogmesh/internal/identity"
	"github.com/dmitrijs2005/blogmesh/internal/identity/config"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/dmitrijs2005/blogmesh/internal/metrics"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel).With("service", "identity")
	metrics.Register()

	app, err := identity.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err.Error())
		os.Exit(1)
	}

	app.Run(ctx)

}
