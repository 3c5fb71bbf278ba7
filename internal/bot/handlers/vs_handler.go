package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/reply"
)

// NewVsHandler returns a handler for the /vs command: the price of 1 XTZ
// expressed in another currency (default USD).
func NewVsHandler(deps HandlerDeps) bot.HandlerFunc {
	return vsHandler{deps}.Handle
}

type vsHandler struct {
	deps HandlerDeps
}

func (h vsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "vs")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	currency := "usd"
	if args := commandArgs(update.Message.Text); len(args) > 0 {
		currency = args[0]
	}

	price, err := h.deps.Prices.Price(ctx, currency)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, currencyErrorMessage(err), err)
		return
	}

	if err := h.deps.Sender.SendReply(ctx, chatID, reply.ExchangeRate(currency, price)); err != nil {
		log.ErrorContext(ctx, "Failed to send exchange rate reply", "error", err, "chat_id", chatID)
	}
}

func currencyErrorMessage(err error) string {
	if apperr.IsKind(err, apperr.KindAPIFormat) {
		return msgInvalidCurrency
	}
	return msgNetworkError
}
