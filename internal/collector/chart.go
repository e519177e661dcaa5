package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"SectorFlow/internal/model"
)

var _ PriceSource = (*ChartSource)(nil)

// ChartSource implements PriceSource with the finance-go chart client. It
// serves as a drop-in alternative to YahooSource when the raw endpoint is
// blocked or rate limited.
type ChartSource struct {
	Now func() time.Time
}

// NewChartSource configures the finance-go backend HTTP client and returns a
// source using it. finance-go keeps a process-wide client, so the last
// configured timeout and proxy win.
func NewChartSource(proxyURL string, timeout time.Duration) *ChartSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	finance.SetHTTPClient(&http.Client{Timeout: timeout, Transport: transport})
	return &ChartSource{Now: time.Now}
}

func (c *ChartSource) Name() string { return "finance-go" }

func (c *ChartSource) FetchDaily(ctx context.Context, symbol string, rng Range) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := c.Now()
	start, err := rng.Start(end)
	if err != nil {
		return nil, err
	}

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	return collectBars(ctx, symbol, iter)
}

// barIterator is the part of *chart.Iter that collectBars consumes.
type barIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// collectBars drains iter into daily bars, stopping as soon as ctx is done.
func collectBars(ctx context.Context, symbol string, iter barIterator) ([]model.OHLCV, error) {
	var bars []model.OHLCV
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar := iter.Bar()
		o, _ := bar.Open.Float64()
		h, _ := bar.High.Float64()
		l, _ := bar.Low.Float64()
		cl, _ := bar.Close.Float64()
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Date:   model.CivilDate(time.Unix(int64(bar.Timestamp), 0).UTC()),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: float64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("finance-go chart %s: no data returned", symbol)
	}
	return bars, nil
}
