package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = TezGlyphDescription + `

/ticker - Get the price of XTZ.
/chart - Get the price action chart of XTZ, default 7 days (eg: /chart 240).
/vs - Get the price of XTZ versus another currency (eg: /vs ETH).
/convert - Convert an amount of currency to get the equivalent amount in XTZ (eg: /convert 4 ETH).
/account - Get blockchain metadata associated with an address (eg: /account <address>).
/balance - Get the XTZ balance of an address (eg: /balance <address>).`

// TezGlyphDescription is the bot's self-description shown by /start and
// /help, and set as the bot profile description on startup.
const TezGlyphDescription = "ꜩ XTZ EzBot is a Tezos blockchain bot. Get quick and easy access to Tezos blockchain information, including price action graphs and account metadata queries."

// NewHelpHandler returns a handler for the /start and /help commands.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return helpHandler{deps}.Handle
}

type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if err := h.deps.Sender.SendText(ctx, chatID, helpText); err != nil {
		log.ErrorContext(ctx, "Failed to send help message", "error", err, "chat_id", chatID)
	}
}
