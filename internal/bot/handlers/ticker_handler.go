package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/reply"
)

// NewTickerHandler returns a handler for the /ticker command. It sends the
// current USD quote, a divider, the default price action chart, and the
// data source attribution, in that order.
func NewTickerHandler(deps HandlerDeps) bot.HandlerFunc {
	return tickerHandler{deps}.Handle
}

type tickerHandler struct {
	deps HandlerDeps
}

func (h tickerHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "ticker")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	price, err := h.deps.Prices.Price(ctx, "usd")
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, tickerErrorMessage(err), err)
		return
	}

	days := h.deps.Config.Chart.DefaultDays
	series, err := h.deps.Prices.MarketChart(ctx, days)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, tickerErrorMessage(err), err)
		return
	}

	image, err := h.deps.Charts.Render(series, days)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, msgChartUnavailable, err)
		return
	}

	if err := h.deps.Sender.SendReply(ctx, chatID, reply.Ticker(price)); err != nil {
		log.ErrorContext(ctx, "Failed to send ticker reply", "error", err, "chat_id", chatID)
		return
	}
	if err := h.deps.Sender.SendText(ctx, chatID, chartDivider); err != nil {
		log.ErrorContext(ctx, "Failed to send divider", "error", err, "chat_id", chatID)
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

func tickerErrorMessage(err error) string {
	if apperr.IsKind(err, apperr.KindNetwork) {
		return msgNetworkError
	}
	return msgTickerUnavailable
}
