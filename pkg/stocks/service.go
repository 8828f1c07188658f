package stocks

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// UnableMarker flags a snapshot that looks successful but carries no usable
// data (e.g. a poisoned cache entry); such snapshots are dropped.
const UnableMarker = "Unable to fetch"

const defaultHistoryDays = 7

// Service turns ticker symbols into textual market snapshots. The history
// fetcher and cache are both optional.
type Service struct {
	fetcher     QuoteFetcher
	history     HistoryFetcher
	cache       Cache
	historyDays int
}

func NewService(fetcher QuoteFetcher, history HistoryFetcher, cache Cache) *Service {
	return &Service{
		fetcher:     fetcher,
		history:     history,
		cache:       cache,
		historyDays: defaultHistoryDays,
	}
}

// Snapshot formats one symbol's market data block.
func (s *Service) Snapshot(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("empty symbol")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(symbol); ok {
			slog.Info("stock snapshot cache hit", "symbol", symbol)
			return cached, nil
		}
	}

	quote, err := s.fetcher.Quote(symbol)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stock: %s\n", quote.Symbol))
	sb.WriteString(fmt.Sprintf("Current Price: $%.2f\n", quote.Current))
	sb.WriteString(fmt.Sprintf("Change: %+.2f (%+.2f%%)\n", quote.Change, quote.PercentChange))
	sb.WriteString(fmt.Sprintf("Day Range: $%.2f - $%.2f\n", quote.Low, quote.High))
	sb.WriteString(fmt.Sprintf("Open: $%.2f\n", quote.Open))
	sb.WriteString(fmt.Sprintf("Previous Close: $%.2f", quote.PrevClose))

	if s.history != nil {
		points, err := s.history.RecentCloses(symbol, s.historyDays)
		if err != nil {
			// The quote alone is still a usable snapshot.
			slog.Warn("error fetching stock history", "symbol", symbol, "error", err)
		} else if len(points) > 0 {
			sb.WriteString("\nRecent Daily Closes:")
			for _, p := range points {
				sb.WriteString(fmt.Sprintf("\n  %s: $%s", p.Date.Format("2006-01-02"), p.Close.StringFixed(2)))
			}
		}
	}

	snapshot := sb.String()

	if s.cache != nil {
		s.cache.Set(symbol, snapshot)
	}

	return snapshot, nil
}

// BuildContext fetches all symbols concurrently and joins the successful
// snapshots with a blank line, preserving the input order. Failures are
// logged and skipped; the result is empty when every symbol fails.
func (s *Service) BuildContext(symbols []string) string {
	results := make([]string, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			snapshot, err := s.Snapshot(symbol)
			if err != nil {
				slog.Error("error fetching stock data", "symbol", symbol, "error", err)
				return
			}
			if strings.Contains(snapshot, UnableMarker) {
				slog.Warn("discarding unusable stock snapshot", "symbol", symbol)
				return
			}
			results[i] = snapshot
		}(i, symbol)
	}
	wg.Wait()

	var parts []string
	for _, snapshot := range results {
		if snapshot != "" {
			parts = append(parts, snapshot)
		}
	}

	return strings.Join(parts, "\n\n")
}
