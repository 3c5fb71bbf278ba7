package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/edgard/tezbot/internal/reply"
)

const (
	chartDivider     = "------"
	chartHeader      = "TEZOS PRICE ACTION CHART"
	chartImageName   = "TezosPlot.png"
	chartAttribution = "Source: CoinGecko - https://www.coingecko.com/en/coins/tezos"

	msgNetworkError      = "Could not reach the data service. Please try again later."
	msgInvalidAddress    = "That is not a valid address."
	msgMissingAddress    = "You must specify an address to query."
	msgInvalidCurrency   = "That currency is not supported."
	msgInvalidDays       = "Days must be a positive number (eg: /chart 30)."
	msgInvalidAmount     = "Amount must be a number (eg: /convert 4 ETH)."
	msgZeroPrice         = "The price of that currency is zero, conversion is not possible."
	msgChartUnavailable  = "Could not build the price chart. Please try again later."
	msgTickerUnavailable = "Could not fetch the current price. Please try again later."
)

// commandArgs returns the positional arguments of a command message,
// excluding the command itself.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// sendErrorReply logs the original error detail and sends a single
// user-facing error reply. The cause is never shown to the user.
func sendErrorReply(ctx context.Context, deps HandlerDeps, log *slog.Logger, chatID int64, userMsg string, cause error) {
	log.ErrorContext(ctx, "Command failed", "error", cause, "chat_id", chatID)

	if err := deps.Sender.SendReply(ctx, chatID, reply.Error(userMsg)); err != nil {
		log.ErrorContext(ctx, "Failed to send error reply", "error", err, "chat_id", chatID)
	}
}
