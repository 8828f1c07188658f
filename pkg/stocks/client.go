package stocks

import (
	"time"

	"github.com/shopspring/decimal"
)

type Quote struct {
	Symbol        string
	Current       float64
	Change        float64
	PercentChange float64
	High          float64
	Low           float64
	Open          float64
	PrevClose     float64
}

type ClosePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

type QuoteFetcher interface {
	Quote(symbol string) (*Quote, error)
	Name() string
}

type HistoryFetcher interface {
	RecentCloses(symbol string, days int) ([]ClosePoint, error)
}

// Cache holds formatted snapshots keyed by symbol. Implementations decide
// the TTL; a nil cache disables caching entirely.
type Cache interface {
	Get(symbol string) (string, bool)
	Set(symbol, snapshot string)
}
