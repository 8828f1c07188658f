package stocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// YahooHistoryClient fetches recent daily bars from Yahoo Finance.
type YahooHistoryClient struct{}

func NewYahooHistoryClient() *YahooHistoryClient {
	return &YahooHistoryClient{}
}

func (c *YahooHistoryClient) RecentCloses(symbol string, days int) ([]ClosePoint, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var points []ClosePoint
	for iter.Next() {
		bar := iter.Bar()
		points = append(points, ClosePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0),
			Close: bar.Close,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, err)
	}

	return points, nil
}
