package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/config"
	handler "github.com/MKhiriev/bullbear-client/internal/handler/http"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/internal/server"
	"github.com/MKhiriev/bullbear-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("bullbear-devserver")
	cfg, err := config.GetDevServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Address).Dur("token_ttl", cfg.TokenTTL).Msg("received configs")

	backend := adapter.NewMockAuthBackend(config.App{
		TokenSignKey: cfg.TokenSignKey,
		MockTokenTTL: cfg.TokenTTL,
		MockLatency:  cfg.Latency,
	}, log)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	h := handler.NewHandler(backend, cfg.TokenSignKey, buildInfo, log)

	srv, err := server.NewServer(h.Init(), cfg.Address, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err = srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
