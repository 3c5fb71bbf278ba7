package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/bot/handlers"
	"github.com/edgard/tezbot/internal/coingecko"
	"github.com/edgard/tezbot/internal/config"
	"github.com/edgard/tezbot/internal/reply"
	"github.com/edgard/tezbot/internal/tzkt"
)

// fakePrices implements handlers.PriceService.
type fakePrices struct {
	price     decimal.Decimal
	priceErr  error
	series    []coingecko.PricePoint
	seriesErr error

	priceCalls  int
	seriesCalls int
	gotCurrency string
	gotDays     int
}

func (f *fakePrices) Price(_ context.Context, currency string) (decimal.Decimal, error) {
	f.priceCalls++
	f.gotCurrency = currency
	return f.price, f.priceErr
}

func (f *fakePrices) MarketChart(_ context.Context, days int) ([]coingecko.PricePoint, error) {
	f.seriesCalls++
	f.gotDays = days
	return f.series, f.seriesErr
}

// fakeIndexer implements handlers.IndexerService.
type fakeIndexer struct {
	fields  []tzkt.MetadataField
	metaErr error
	balance int64
	balErr  error

	calls int
}

func (f *fakeIndexer) AccountMetadata(_ context.Context, _ string) ([]tzkt.MetadataField, error) {
	f.calls++
	return f.fields, f.metaErr
}

func (f *fakeIndexer) Balance(_ context.Context, _ string) (int64, error) {
	f.calls++
	return f.balance, f.balErr
}

// fakeCharts implements handlers.ChartRenderer.
type fakeCharts struct {
	image []byte
	err   error

	calls   int
	gotDays int
}

func (f *fakeCharts) Render(_ []coingecko.PricePoint, days int) ([]byte, error) {
	f.calls++
	f.gotDays = days
	return f.image, f.err
}

// recordingSender captures the outgoing message sequence.
type sentMessage struct {
	kind  string // "text", "reply" or "image"
	text  string
	reply reply.Reply
	name  string
}

type recordingSender struct {
	sent []sentMessage
}

func (s *recordingSender) SendText(_ context.Context, _ int64, text string) error {
	s.sent = append(s.sent, sentMessage{kind: "text", text: text})
	return nil
}

func (s *recordingSender) SendReply(_ context.Context, _ int64, r reply.Reply) error {
	s.sent = append(s.sent, sentMessage{kind: "reply", reply: r})
	return nil
}

func (s *recordingSender) SendImage(_ context.Context, _ int64, name string, _ []byte) error {
	s.sent = append(s.sent, sentMessage{kind: "image", name: name})
	return nil
}

func testDeps(prices *fakePrices, indexer *fakeIndexer, charts *fakeCharts, sender *recordingSender) handlers.HandlerDeps {
	return handlers.HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{
			Chart: config.ChartConfig{DefaultDays: 7, MaxDays: 365},
		},
		Prices:  prices,
		Indexer: indexer,
		Charts:  charts,
		Sender:  sender,
	}
}

func msgUpdate(text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			Text: text,
			Chat: models.Chat{ID: 42},
		},
	}
}

func testSeries() []coingecko.PricePoint {
	return []coingecko.PricePoint{
		{TimestampMs: 1000, Price: 5.1},
		{TimestampMs: 2000, Price: 5.4},
		{TimestampMs: 3000, Price: 5.2},
	}
}

func requireSingleErrorReply(t *testing.T, sender *recordingSender, body string) {
	t.Helper()
	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly 1 outgoing message, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.kind != "reply" {
		t.Fatalf("expected a reply, got %q", msg.kind)
	}
	if msg.reply.Title != "Error" {
		t.Errorf("expected title %q, got %q", "Error", msg.reply.Title)
	}
	if msg.reply.Color != reply.ColorError {
		t.Errorf("expected error accent color")
	}
	if msg.reply.Body != body {
		t.Errorf("expected body %q, got %q", body, msg.reply.Body)
	}
}

func TestTicker_SendOrder(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("6.42"), series: testSeries()}
	charts := &fakeCharts{image: []byte{0x89, 'P', 'N', 'G'}}
	sender := &recordingSender{}

	h := handlers.NewTickerHandler(testDeps(prices, &fakeIndexer{}, charts, sender))
	h(context.Background(), nil, msgUpdate("/ticker"))

	if len(sender.sent) != 5 {
		t.Fatalf("expected 5 outgoing messages, got %d", len(sender.sent))
	}

	quote := sender.sent[0]
	if quote.kind != "reply" || quote.reply.Title != "Tezos Ticker" {
		t.Errorf("first message should be the ticker reply, got %+v", quote)
	}
	if quote.reply.Body != "ꜩ = $6.42 USD" {
		t.Errorf("unexpected quote body %q", quote.reply.Body)
	}
	if sender.sent[1].text != "------" {
		t.Errorf("second message should be the divider, got %q", sender.sent[1].text)
	}
	if sender.sent[2].text != "TEZOS PRICE ACTION CHART" {
		t.Errorf("third message should be the chart header, got %q", sender.sent[2].text)
	}
	if sender.sent[3].kind != "image" || sender.sent[3].name != "TezosPlot.png" {
		t.Errorf("fourth message should be the chart image, got %+v", sender.sent[3])
	}
	if sender.sent[4].text != "Source: CoinGecko - https://www.coingecko.com/en/coins/tezos" {
		t.Errorf("fifth message should be the attribution, got %q", sender.sent[4].text)
	}

	if charts.gotDays != 7 {
		t.Errorf("expected default 7 chart days, got %d", charts.gotDays)
	}
}

func TestTicker_RepeatedCallsProduceSamePriceText(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("6.42"), series: testSeries()}
	sender := &recordingSender{}
	h := handlers.NewTickerHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{image: []byte{1}}, sender))

	h(context.Background(), nil, msgUpdate("/ticker"))
	h(context.Background(), nil, msgUpdate("/ticker"))

	if len(sender.sent) != 10 {
		t.Fatalf("expected 10 outgoing messages, got %d", len(sender.sent))
	}
	if sender.sent[0].reply.Body != sender.sent[5].reply.Body {
		t.Errorf("price text differs between invocations: %q vs %q", sender.sent[0].reply.Body, sender.sent[5].reply.Body)
	}
}

func TestTicker_NetworkError(t *testing.T) {
	prices := &fakePrices{priceErr: apperr.NewNetworkError("down", errors.New("refused"))}
	sender := &recordingSender{}
	h := handlers.NewTickerHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/ticker"))

	requireSingleErrorReply(t, sender, "Could not reach the data service. Please try again later.")
}

func TestChart_CustomDays(t *testing.T) {
	prices := &fakePrices{series: testSeries()}
	charts := &fakeCharts{image: []byte{1}}
	sender := &recordingSender{}
	h := handlers.NewChartHandler(testDeps(prices, &fakeIndexer{}, charts, sender))

	h(context.Background(), nil, msgUpdate("/chart 30"))

	if prices.gotDays != 30 || charts.gotDays != 30 {
		t.Errorf("expected 30 days, got fetch=%d render=%d", prices.gotDays, charts.gotDays)
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 outgoing messages, got %d", len(sender.sent))
	}
	if sender.sent[0].text != "TEZOS PRICE ACTION CHART" || sender.sent[1].kind != "image" || sender.sent[2].kind != "text" {
		t.Errorf("unexpected send order: %+v", sender.sent)
	}
}

func TestChart_DefaultDays(t *testing.T) {
	prices := &fakePrices{series: testSeries()}
	charts := &fakeCharts{image: []byte{1}}
	sender := &recordingSender{}
	h := handlers.NewChartHandler(testDeps(prices, &fakeIndexer{}, charts, sender))

	h(context.Background(), nil, msgUpdate("/chart"))

	if prices.gotDays != 7 {
		t.Errorf("expected default 7 days, got %d", prices.gotDays)
	}
}

func TestChart_InvalidDays(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-4", "1.5"} {
		t.Run(arg, func(t *testing.T) {
			prices := &fakePrices{series: testSeries()}
			sender := &recordingSender{}
			h := handlers.NewChartHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{image: []byte{1}}, sender))

			h(context.Background(), nil, msgUpdate("/chart "+arg))

			requireSingleErrorReply(t, sender, "Days must be a positive number (eg: /chart 30).")
			if prices.seriesCalls != 0 {
				t.Errorf("series should not be fetched on invalid input")
			}
		})
	}
}

func TestChart_ClampsOversizedDays(t *testing.T) {
	prices := &fakePrices{series: testSeries()}
	charts := &fakeCharts{image: []byte{1}}
	sender := &recordingSender{}
	h := handlers.NewChartHandler(testDeps(prices, &fakeIndexer{}, charts, sender))

	h(context.Background(), nil, msgUpdate("/chart 4000"))

	if prices.gotDays != 365 || charts.gotDays != 365 {
		t.Errorf("expected clamp to 365 days, got fetch=%d render=%d", prices.gotDays, charts.gotDays)
	}
}

func TestVs(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("0.00123456789")}
	sender := &recordingSender{}
	h := handlers.NewVsHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/vs ETH"))

	if prices.gotCurrency != "ETH" {
		t.Errorf("expected currency passed through, got %q", prices.gotCurrency)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 outgoing message, got %d", len(sender.sent))
	}
	got := sender.sent[0].reply
	if got.Title != "Tezos Exchange Rate" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Body != "1 XTZ is equivalent to 0.001235 ETH." {
		t.Errorf("unexpected body %q", got.Body)
	}
}

func TestVs_DefaultsToUSD(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("6.42")}
	sender := &recordingSender{}
	h := handlers.NewVsHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/vs"))

	if prices.gotCurrency != "usd" {
		t.Errorf("expected usd default, got %q", prices.gotCurrency)
	}
}

func TestVs_UnsupportedCurrency(t *testing.T) {
	prices := &fakePrices{priceErr: apperr.NewAPIFormatError("missing currency", nil)}
	sender := &recordingSender{}
	h := handlers.NewVsHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/vs zzz"))

	requireSingleErrorReply(t, sender, "That currency is not supported.")
}

func TestConvert(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("2")}
	sender := &recordingSender{}
	h := handlers.NewConvertHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/convert 4 ETH"))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 outgoing message, got %d", len(sender.sent))
	}
	got := sender.sent[0].reply
	if got.Body != "4 ETH would convert to approximately 2 XTZ." {
		t.Errorf("unexpected body %q", got.Body)
	}
}

func TestConvert_Defaults(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("0.5")}
	sender := &recordingSender{}
	h := handlers.NewConvertHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/convert"))

	got := sender.sent[0].reply
	if got.Body != "1 USD would convert to approximately 2 XTZ." {
		t.Errorf("unexpected body %q", got.Body)
	}
}

func TestConvert_InvalidAmount(t *testing.T) {
	prices := &fakePrices{price: decimal.RequireFromString("2")}
	sender := &recordingSender{}
	h := handlers.NewConvertHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/convert four"))

	requireSingleErrorReply(t, sender, "Amount must be a number (eg: /convert 4 ETH).")
	if prices.priceCalls != 0 {
		t.Errorf("price should not be fetched on invalid input")
	}
}

func TestConvert_ZeroPrice(t *testing.T) {
	prices := &fakePrices{price: decimal.Zero}
	sender := &recordingSender{}
	h := handlers.NewConvertHandler(testDeps(prices, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/convert 4 usd"))

	requireSingleErrorReply(t, sender, "The price of that currency is zero, conversion is not possible.")
}

// A missing address produces exactly one validation reply and no indexer
// query. The source behavior of replying and then querying the sentinel
// address anyway was dropped deliberately.
func TestAccount_MissingAddress(t *testing.T) {
	indexer := &fakeIndexer{}
	sender := &recordingSender{}
	h := handlers.NewAccountHandler(testDeps(&fakePrices{}, indexer, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/account"))

	requireSingleErrorReply(t, sender, "You must specify an address to query.")
	if indexer.calls != 0 {
		t.Errorf("indexer should not be queried without an address")
	}
}

func TestAccount_InvalidAddress(t *testing.T) {
	indexer := &fakeIndexer{metaErr: apperr.NewAPIFormatError("empty body", nil)}
	sender := &recordingSender{}
	h := handlers.NewAccountHandler(testDeps(&fakePrices{}, indexer, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/account bogus"))

	requireSingleErrorReply(t, sender, "That is not a valid address.")
}

func TestAccount_Success(t *testing.T) {
	indexer := &fakeIndexer{fields: []tzkt.MetadataField{
		{Key: "alias", Value: "Tezos Foundation"},
		{Key: "kind", Value: "organization"},
	}}
	sender := &recordingSender{}
	h := handlers.NewAccountHandler(testDeps(&fakePrices{}, indexer, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/account tz1abc"))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 outgoing message, got %d", len(sender.sent))
	}
	got := sender.sent[0].reply
	if got.Title != "Tezos Account Info" {
		t.Errorf("unexpected title %q", got.Title)
	}
	want := "ꜩ Wallet Address: tz1abc\n\nAlias - Tezos Foundation\nKind - organization\n"
	if got.Body != want {
		t.Errorf("unexpected body %q", got.Body)
	}
}

func TestBalance_MissingAddress(t *testing.T) {
	indexer := &fakeIndexer{}
	sender := &recordingSender{}
	h := handlers.NewBalanceHandler(testDeps(&fakePrices{}, indexer, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/balance"))

	requireSingleErrorReply(t, sender, "You must specify an address to query.")
	if indexer.calls != 0 {
		t.Errorf("indexer should not be queried without an address")
	}
}

func TestBalance_Success(t *testing.T) {
	indexer := &fakeIndexer{balance: 1234567890}
	sender := &recordingSender{}
	h := handlers.NewBalanceHandler(testDeps(&fakePrices{}, indexer, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/balance tz1abc"))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 outgoing message, got %d", len(sender.sent))
	}
	got := sender.sent[0].reply
	if got.Body != "Wallet Address: tz1abc\nBalance: 1,234.56789 XTZ" {
		t.Errorf("unexpected body %q", got.Body)
	}
}

func TestBalance_InvalidAddress(t *testing.T) {
	indexer := &fakeIndexer{balErr: apperr.NewAPIFormatError("status 400", nil)}
	sender := &recordingSender{}
	h := handlers.NewBalanceHandler(testDeps(&fakePrices{}, indexer, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/balance bogus"))

	requireSingleErrorReply(t, sender, "That is not a valid address.")
}

func TestRegisterAllCommands_IncludesAliases(t *testing.T) {
	cmds := handlers.RegisterAllCommands(testDeps(&fakePrices{}, &fakeIndexer{}, &fakeCharts{}, &recordingSender{}))

	for _, pattern := range []string{
		"/ticker", "/price",
		"/chart", "/ch",
		"/vs", "/versus",
		"/convert", "/conv",
		"/account", "/acc", "/accountInfo",
		"/balance", "/bal",
		"/start", "/help",
	} {
		if _, ok := cmds[pattern]; !ok {
			t.Errorf("command %q not registered", pattern)
		}
	}
}

func TestHelp(t *testing.T) {
	sender := &recordingSender{}
	h := handlers.NewHelpHandler(testDeps(&fakePrices{}, &fakeIndexer{}, &fakeCharts{}, sender))

	h(context.Background(), nil, msgUpdate("/help"))

	if len(sender.sent) != 1 || sender.sent[0].kind != "text" {
		t.Fatalf("expected 1 text message, got %+v", sender.sent)
	}
	for _, cmd := range []string{"/ticker", "/chart", "/vs", "/convert", "/account", "/balance"} {
		if !strings.Contains(sender.sent[0].text, cmd) {
			t.Errorf("help text missing %q", cmd)
		}
	}
}
