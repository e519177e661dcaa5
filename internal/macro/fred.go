package macro

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"SectorFlow/internal/model"
	"SectorFlow/internal/universe"
)

// DefaultFREDBaseURL is the public FRED API root.
const DefaultFREDBaseURL = "https://api.stlouisfed.org/fred"

// Source fetches the latest observation of one macro series.
type Source interface {
	Latest(ctx context.Context, series universe.MacroSeries) (model.MacroObservation, error)
}

// FREDClient reads series observations from the FRED API.
type FREDClient struct {
	client *resty.Client
	apiKey string
}

// NewFREDClient creates a FRED client. An empty baseURL uses the public API.
func NewFREDClient(baseURL, apiKey, proxyURL string, timeout time.Duration) *FREDClient {
	if baseURL == "" {
		baseURL = DefaultFREDBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &FREDClient{client: client, apiKey: apiKey}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Latest requests the single most recent observation of series.
func (c *FREDClient) Latest(ctx context.Context, series universe.MacroSeries) (model.MacroObservation, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":  series.ID,
			"api_key":    c.apiKey,
			"file_type":  "json",
			"limit":      "1",
			"sort_order": "desc",
		}).
		Get("/series/observations")
	if err != nil {
		return model.MacroObservation{}, fmt.Errorf("fetch %s: %w", series.ID, err)
	}
	if resp.StatusCode() != 200 {
		return model.MacroObservation{}, fmt.Errorf("fetch %s: HTTP %d", series.ID, resp.StatusCode())
	}

	var body observationsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return model.MacroObservation{}, fmt.Errorf("decode %s: %w", series.ID, err)
	}
	if len(body.Observations) == 0 {
		return model.MacroObservation{}, fmt.Errorf("%s: no observations", series.ID)
	}
	o := body.Observations[0]
	return model.MacroObservation{
		Indicator: series.Name,
		Value:     o.Value,
		Date:      o.Date,
		Series:    series.ID,
	}, nil
}
