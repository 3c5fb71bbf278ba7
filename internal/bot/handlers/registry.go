package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its registration
// parameters. It encapsulates all information needed to register a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands keyed by their slash pattern. Aliases point at the same handler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	add := func(handler tgbot.HandlerFunc, patterns ...string) {
		for _, p := range patterns {
			handlers["/"+p] = RegisteredHandler{
				HandlerType: tgbot.HandlerTypeMessageText,
				Pattern:     p,
				Handler:     handler,
				MatchType:   tgbot.MatchTypeCommandStartOnly,
			}
		}
	}

	add(NewTickerHandler(deps), "ticker", "price")
	add(NewChartHandler(deps), "chart", "ch")
	add(NewVsHandler(deps), "vs", "versus")
	add(NewConvertHandler(deps), "convert", "conv")
	add(NewAccountHandler(deps), "account", "acc", "accountInfo")
	add(NewBalanceHandler(deps), "balance", "bal")
	add(NewHelpHandler(deps), "start", "help")

	return handlers
}
