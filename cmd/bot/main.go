// Package main contains the entrypoint for the Tezos Telegram bot.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"

	"github.com/edgard/tezbot/internal/bot/handlers"
	"github.com/edgard/tezbot/internal/chart"
	"github.com/edgard/tezbot/internal/coingecko"
	"github.com/edgard/tezbot/internal/config"
	"github.com/edgard/tezbot/internal/logger"
	"github.com/edgard/tezbot/internal/telegram"
	"github.com/edgard/tezbot/internal/tzkt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components (config, logger, API clients, renderer,
// bot), starts the update loop, and returns an exit code. The missing token
// case fails here, before anything connects.
func run(ctx context.Context) int {
	// Optional .env file for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Debug, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "debug", cfg.Log.Debug, "json", cfg.Log.JSON)

	prices := coingecko.New(cfg.CoinGecko, cfg.HTTP.Timeout, log)
	indexer := tzkt.New(cfg.Tzkt, cfg.HTTP.Timeout, log)
	charts := chart.NewRenderer(log)

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	deps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Prices:  prices,
		Indexer: indexer,
		Charts:  charts,
		Sender:  telegram.NewSender(tg, log),
	}

	cmdHandlers := handlers.RegisterAllCommands(deps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	telegram.AnnounceReady(ctx, tg, log)

	log.Info("Starting bot...")
	tg.Start(ctx) // Blocks until the context is cancelled.

	log.Info("Bot stopped gracefully.")
	return 0
}
