package stocks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const alphaVantageBaseURL = "https://www.alphavantage.co"

type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    alphaVantageBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

func (c *AlphaVantageClient) Quote(symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	url := fmt.Sprintf(
		"%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, symbol, c.apiKey,
	)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("alphavantage quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	var raw avQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode %s: %w", symbol, err)
	}

	gq := raw.GlobalQuote
	if gq.Symbol == "" || gq.Price == "" {
		return nil, fmt.Errorf("alphavantage quote %s: no data", symbol)
	}

	q := &Quote{Symbol: symbol}
	q.Current, err = strconv.ParseFloat(gq.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage quote %s: bad price %q", symbol, gq.Price)
	}

	q.Open, _ = strconv.ParseFloat(gq.Open, 64)
	q.High, _ = strconv.ParseFloat(gq.High, 64)
	q.Low, _ = strconv.ParseFloat(gq.Low, 64)
	q.PrevClose, _ = strconv.ParseFloat(gq.PrevClose, 64)
	q.Change, _ = strconv.ParseFloat(gq.Change, 64)
	q.PercentChange, _ = strconv.ParseFloat(strings.TrimSuffix(gq.ChangePercent, "%"), 64)

	return q, nil
}

type avQuoteResponse struct {
	GlobalQuote avGlobalQuote `json:"Global Quote"`
}

type avGlobalQuote struct {
	Symbol        string `json:"01. symbol"`
	Open          string `json:"02. open"`
	High          string `json:"03. high"`
	Low           string `json:"04. low"`
	Price         string `json:"05. price"`
	PrevClose     string `json:"08. previous close"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}
