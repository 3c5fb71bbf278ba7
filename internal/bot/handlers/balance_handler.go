package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/reply"
)

// NewBalanceHandler returns a handler for the /balance command: the XTZ
// balance of an address. A missing address yields a single validation reply
// and no query.
func NewBalanceHandler(deps HandlerDeps) bot.HandlerFunc {
	return balanceHandler{deps}.Handle
}

type balanceHandler struct {
	deps HandlerDeps
}

func (h balanceHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "balance")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		sendErrorReply(ctx, h.deps, log, chatID, msgMissingAddress,
			apperr.NewValidationError("no address supplied"))
		return
	}
	address := args[0]

	mutez, err := h.deps.Indexer.Balance(ctx, address)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, addressErrorMessage(err), err)
		return
	}

	if err := h.deps.Sender.SendReply(ctx, chatID, reply.Balance(address, mutez)); err != nil {
		log.ErrorContext(ctx, "Failed to send balance reply", "error", err, "chat_id", chatID)
	}
}
