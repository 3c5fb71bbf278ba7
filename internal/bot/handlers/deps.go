package handlers

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/edgard/tezbot/internal/coingecko"
	"github.com/edgard/tezbot/internal/config"
	"github.com/edgard/tezbot/internal/reply"
	"github.com/edgard/tezbot/internal/tzkt"
)

// PriceService fetches prices and price series from the price API.
type PriceService interface {
	Price(ctx context.Context, currency string) (decimal.Decimal, error)
	MarketChart(ctx context.Context, days int) ([]coingecko.PricePoint, error)
}

// IndexerService fetches account data from the blockchain indexer.
type IndexerService interface {
	AccountMetadata(ctx context.Context, address string) ([]tzkt.MetadataField, error)
	Balance(ctx context.Context, address string) (int64, error)
}

// ChartRenderer rasterizes a price series into image bytes.
type ChartRenderer interface {
	Render(series []coingecko.PricePoint, days int) ([]byte, error)
}

// Sender delivers outgoing messages to the originating chat, preserving
// send order within a handler invocation.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendReply(ctx context.Context, chatID int64, r reply.Reply) error
	SendImage(ctx context.Context, chatID int64, name string, image []byte) error
}

// HandlerDeps provides dependencies for the command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Prices  PriceService
	Indexer IndexerService
	Charts  ChartRenderer
	Sender  Sender
}
