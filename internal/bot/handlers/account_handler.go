package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/reply"
)

// NewAccountHandler returns a handler for the /account command: the
// indexer metadata of an address. A missing address yields a single
// validation reply and no query.
func NewAccountHandler(deps HandlerDeps) bot.HandlerFunc {
	return accountHandler{deps}.Handle
}

type accountHandler struct {
	deps HandlerDeps
}

func (h accountHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "account")

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

	fields, err := h.deps.Indexer.AccountMetadata(ctx, address)
	if err != nil {
		sendErrorReply(ctx, h.deps, log, chatID, addressErrorMessage(err), err)
		return
	}

	if err := h.deps.Sender.SendReply(ctx, chatID, reply.AccountInfo(address, fields)); err != nil {
		log.ErrorContext(ctx, "Failed to send account info reply", "error", err, "chat_id", chatID)
	}
}

func addressErrorMessage(err error) string {
	if apperr.IsKind(err, apperr.KindNetwork) {
		return msgNetworkError
	}
	return msgInvalidAddress
}
