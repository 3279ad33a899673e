package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"

	"food-analyzer/api/internal/config"
	"food-analyzer/api/internal/engines"
	handle "food-analyzer/api/internal/handle"
	"food-analyzer/api/internal/httpserver"
	"food-analyzer/api/internal/logging"
	"food-analyzer/api/internal/metrics"
	"food-analyzer/api/internal/nutrition"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engs, closeEngines := engines.Build(ctx, cfg)
	defer closeEngines()

	instruction, err := nutrition.LoadInstruction(cfg.PromptDir)
	if err != nil {
		log.WithError(err).Fatal("load prompt")
	}

	h := handle.New(engs, nutrition.NewExtractor(instruction), cfg.OracleTimeout, cfg.MaxUploadBytes)
	srv := httpserver.New(":"+cfg.Port, httpserver.NewMux(h))

	log.WithFields(log.Fields{
		"oracles":        engs.Names(),
		"default_oracle": cfg.DefaultOracle,
		"oracle_timeout": cfg.OracleTimeout.String(),
	}).Info("food-analyzer starting")

	if err := httpserver.Serve(ctx, srv, 10*time.Second); err != nil {
		log.WithError(err).Fatal("http server")
	}
}
