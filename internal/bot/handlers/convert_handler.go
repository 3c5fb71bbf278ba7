package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/reply"
)

// NewConvertHandler returns a handler for the /convert command: how much XTZ
// an amount of another currency buys (defaults: 1 USD).
func NewConvertHandler(deps HandlerDeps) bot.HandlerFunc {
	return convertHandler{deps}.Handle
}

type convertHandler struct {
	deps HandlerDeps
}

func (h convertHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "convert")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	amount := decimal.NewFromInt(1)
	currency := "USD"

	args := commandArgs(update.Message.Text)
	if len(args) > 0 {
		parsed, err := decimal.NewFromString(args[0])
		if err != nil {
			sendErrorReply(ctx, h.deps, log, chatID, msgInvalidAmount,
				apperr.NewValidationError("invalid amount argument: "+args[0]))
			return
		}
		amount = parsed
	}
	if len(args) > 1 {
		currency = args[1]
	}

	price, err := h.deps.Prices.Price(ctx, currency)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, currencyErrorMessage(err), err)
		return
	}

	r, err := reply.Conversion(amount, currency, price)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, msgZeroPrice, err)
		return
	}

	if err := h.deps.Sender.SendReply(ctx, chatID, r); err != nil {
		log.ErrorContext(ctx, "Failed to send conversion reply", "error", err, "chat_id", chatID)
	}
}
