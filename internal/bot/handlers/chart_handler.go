package handlers

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/apperr"
)

// NewChartHandler returns a handler for the /chart command. It accepts an
// optional day count (default from config), rejects non-positive or
// non-numeric values, and clamps oversized values to the configured maximum.
func NewChartHandler(deps HandlerDeps) bot.HandlerFunc {
	return chartHandler{deps}.Handle
}

type chartHandler struct {
	deps HandlerDeps
}

func (h chartHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "chart")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	days := h.deps.Config.Chart.DefaultDays
	if args := commandArgs(update.Message.Text); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			sendErrorReply(ctx, h.deps, log, chatID, msgInvalidDays,
				apperr.NewValidationError("invalid days argument: "+args[0]))
			return
		}
		days = n
		if days > h.deps.Config.Chart.MaxDays {
			log.InfoContext(ctx, "Clamping chart days", "requested", days, "max", h.deps.Config.Chart.MaxDays)
			days = h.deps.Config.Chart.MaxDays
		}
	}

	series, err := h.deps.Prices.MarketChart(ctx, days)
	if err != nil {
		msg := msgChartUnavailable
		if apperr.IsKind(err, apperr.KindNetwork) {
			msg = msgNetworkError
		}
		sendErrorReply(ctx, h.deps, log, chatID, msg, err)
		return
	}

	image, err := h.deps.Charts.Render(series, days)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, msgChartUnavailable, err)
		return
	}

	if err := h.deps.Sender.SendText(ctx, chatID, chartHeader); err != nil {
		log.ErrorContext(ctx, "Failed to send chart header", "error", err, "chat_id", chatID)
		return
	}
	if err := h.deps.Sender.SendImage(ctx, chatID, chartImageName, image); err != nil {
		log.ErrorContext(ctx, "Failed to send chart image", "error", err, "chat_id", chatID)
		return
	}
	if err := h.deps.Sender.SendText(ctx, chatID, chartAttribution); err != nil {
		log.ErrorContext(ctx, "Failed to send attribution", "error", err, "chat_id", chatID)
	}
}
