package stocks

import (
	"context"
	"fmt"
	"strings"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) Quote(symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	res, _, err := c.client.Quote(context.Background()).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	// Finnhub returns zeroed quotes for unknown symbols instead of an error.
	if res.C == nil || *res.C == 0 {
		return nil, fmt.Errorf("finnhub quote %s: no data", symbol)
	}

	q := &Quote{
		Symbol:  symbol,
		Current: float64(*res.C),
	}

	if res.D != nil {
		q.Change = float64(*res.D)
	}
	if res.Dp != nil {
		q.PercentChange = float64(*res.Dp)
	}
	if res.H != nil {
		q.High = float64(*res.H)
	}
	if res.L != nil {
		q.Low = float64(*res.L)
	}
	if res.O != nil {
		q.Open = float64(*res.O)
	}
	if res.Pc != nil {
		q.PrevClose = float64(*res.Pc)
	}

	return q, nil
}
