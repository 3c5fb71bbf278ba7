// Package reply builds the user-facing messages the bot sends back to the
// chat. Replies are immutable values owned by the request that created them.
package reply

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/tzkt"
)

// TezGlyph is the XTZ currency sign used in reply bodies.
const TezGlyph = "ꜩ"

// mutezPerTez converts micro-units to display units.
const mutezPerTez = 1_000_000

// Color is the accent marker distinguishing success from error replies.
type Color int

const (
	ColorSuccess Color = iota
	ColorError
)

// Reply is a single outgoing message: a titled text body with an accent
// color and an optional image attachment.
type Reply struct {
	Title     string
	Body      string
	Color     Color
	Image     []byte
	ImageName string
}

// Ticker builds the current USD price reply. The price is shown as returned
// by the API, without rounding.
func Ticker(price decimal.Decimal) Reply {
	return Reply{
		Title: "Tezos Ticker",
		Body:  fmt.Sprintf("%s = $%s USD", TezGlyph, price.String()),
	}
}

// ExchangeRate builds the reply for the price of 1 XTZ in another currency,
// rounded to 6 decimal places.
func ExchangeRate(currency string, price decimal.Decimal) Reply {
	return Reply{
		Title: "Tezos Exchange Rate",
		Body:  fmt.Sprintf("1 XTZ is equivalent to %s %s.", price.Round(6).String(), strings.ToUpper(currency)),
	}
}

// Conversion builds the reply converting an amount of another currency into
// XTZ, rounded to 6 decimal places. A zero price is an arithmetic error.
func Conversion(amount decimal.Decimal, currency string, price decimal.Decimal) (Reply, error) {
	if price.IsZero() {
		return Reply{}, apperr.NewArithmeticError("cannot convert at a zero price")
	}

	converted := amount.DivRound(price, 6)
	return Reply{
		Title: "Approx. Tezos Conversion",
		Body: fmt.Sprintf("%s %s would convert to approximately %s XTZ.",
			amount.String(), strings.ToUpper(currency), converted.String()),
	}, nil
}

// AccountInfo builds the reply listing an account's metadata, one line per
// field in the order the indexer returned them.
func AccountInfo(address string, fields []tzkt.MetadataField) Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Wallet Address: %s\n\n", TezGlyph, address)
	for _, f := range fields {
		fmt.Fprintf(&b, "%s - %v\n", capitalize(f.Key), f.Value)
	}

	return Reply{
		Title: "Tezos Account Info",
		Body:  b.String(),
	}
}

// Balance builds the reply showing an account balance. The mutez amount is
// divided by 1,000,000 and formatted with thousands separators.
func Balance(address string, mutez int64) Reply {
	tez := float64(mutez) / mutezPerTez
	return Reply{
		Title: TezGlyph + " Tezos Account Balance",
		Body:  fmt.Sprintf("Wallet Address: %s\nBalance: %s XTZ", address, humanize.Commaf(tez)),
	}
}

// Error builds an error reply with the error accent color.
func Error(message string) Reply {
	return Reply{
		Title: "Error",
		Body:  message,
		Color: ColorError,
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
