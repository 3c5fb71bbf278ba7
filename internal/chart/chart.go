// Package chart rasterizes price series into PNG line charts.
package chart

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/edgard/tezbot/internal/apperr"
	"github.com/edgard/tezbot/internal/coingecko"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// Renderer draws price action charts. Every call builds a fresh chart value,
// so consecutive renders never overlay.
type Renderer struct {
	log *slog.Logger
}

// NewRenderer creates a chart renderer.
func NewRenderer(log *slog.Logger) *Renderer {
	return &Renderer{log: log.With("component", "chart")}
}

// Render draws a line chart of the series (price vs sample index) and
// returns the PNG bytes. The y-axis is labeled "Price (USD)"; the x-axis
// carries no tick labels, only a date-range caption derived from days.
// The image goes through a per-invocation temporary file that is removed
// on every path.
func (r *Renderer) Render(series []coingecko.PricePoint, days int) ([]byte, error) {
	if len(series) < 2 {
		return nil, apperr.NewAPIFormatError(fmt.Sprintf("price series has %d points, need at least 2", len(series)), nil)
	}

	xValues := make([]float64, len(series))
	yValues := make([]float64, len(series))
	for i, p := range series {
		xValues[i] = float64(i)
		yValues[i] = p.Price
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("Tezos Price Action (%d Days)", days),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: gochart.XAxis{
			Name: dateRangeCaption(time.Now(), days),
			// Positions are sample indexes, not calendar time; hide the labels.
			ValueFormatter: func(any) string { return "" },
		},
		YAxis: gochart.YAxis{
			Name: "Price (USD)",
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	f, err := os.CreateTemp("", "tezos-chart-*.png")
	if err != nil {
		return nil, fmt.Errorf("chart: create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if err := graph.Render(gochart.PNG, f); err != nil {
		f.Close()
		return nil, fmt.Errorf("chart: render: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("chart: close temp file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chart: read rendered image: %w", err)
	}

	r.log.Debug("Rendered price chart", "days", days, "points", len(series), "bytes", len(data))
	return data, nil
}

// dateRangeCaption formats the trailing day range as "MM-DD to MM-DD of YYYY".
func dateRangeCaption(today time.Time, days int) string {
	start := today.AddDate(0, 0, -days)
	return fmt.Sprintf("%s to %s of %d", start.Format("01-02"), today.Format("01-02"), today.Year())
}
