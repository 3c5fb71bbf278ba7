// Package telegram handles the setup and registration of Telegram bot
// handlers and renders outgoing replies into Telegram messages.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/bot/handlers"
)

// NewTelegramBot creates a new Telegram bot instance using the
// go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully")
	return b, nil
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is
// the outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers registers command handlers with the Telegram bot
// instance, applying any per-handler middleware.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	for _, regHandler := range registeredHandlers {
		if regHandler.Handler == nil {
			log.Warn("Skipping registration for nil handler", "pattern", regHandler.Pattern)
			continue
		}

		finalHandler := applyMiddleware(regHandler.Handler, regHandler.Middleware)
		b.RegisterHandler(regHandler.HandlerType, regHandler.Pattern, regHandler.MatchType, finalHandler)
		log.Debug("Registered handler", "pattern", regHandler.Pattern, "match_type", regHandler.MatchType)
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registeredHandlers))
	return nil
}

// AnnounceReady publishes the command list and the bot's presence strings,
// and logs the ready state. Failures here are logged, not fatal: the bot can
// serve commands without a published menu.
func AnnounceReady(ctx context.Context, b *bot.Bot, logger *slog.Logger) {
	log := logger.With("component", "telegram_bot")

	commands := []models.BotCommand{
		{Command: "ticker", Description: "Get the price of XTZ."},
		{Command: "chart", Description: "Get the price action chart of XTZ, default 7 days."},
		{Command: "vs", Description: "Get the price of XTZ versus another currency."},
		{Command: "convert", Description: "Convert an amount of currency to XTZ."},
		{Command: "account", Description: "Get blockchain metadata for an address."},
		{Command: "balance", Description: "Get the XTZ balance of an address."},
		{Command: "help", Description: "Show the command list."},
	}
	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		log.Warn("Failed to set bot commands", "error", err)
	}

	if _, err := b.SetMyShortDescription(ctx, &bot.SetMyShortDescriptionParams{ShortDescription: "🍞 Baking Blocks"}); err != nil {
		log.Warn("Failed to set bot short description", "error", err)
	}
	if _, err := b.SetMyDescription(ctx, &bot.SetMyDescriptionParams{Description: handlers.TezGlyphDescription}); err != nil {
		log.Warn("Failed to set bot description", "error", err)
	}

	log.Info("TEZOS BOT - ONLINE")
}
