package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lyrics-corpus/internal/app"
	"lyrics-corpus/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Run failed")
		stop()
		os.Exit(1)
	}
}
