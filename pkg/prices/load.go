package prices

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"token-swap/pkg/types"
)

// MinEntries is the smallest usable book: one sell and one buy token
const MinEntries = 2

// Fetcher returns the raw entries of a price feed
type Fetcher interface {
	FetchPrices(ctx context.Context) ([]types.PriceEntry, error)
}

// Fallback returns the built-in price list used when the feed cannot be read
func Fallback() []types.PriceEntry {
	return []types.PriceEntry{
		{Currency: "GROK3", Price: decimal.RequireFromString("0.000085"), Date: "2025-02-26"},
		{Currency: "ETH", Price: decimal.RequireFromString("2505.89"), Date: "2025-02-26"},
		{Currency: "BTC", Price: decimal.RequireFromString("96540.12"), Date: "2025-02-26"},
		{Currency: "USDT", Price: decimal.RequireFromString("1.0"), Date: "2025-02-26"},
		{Currency: "LINK", Price: decimal.RequireFromString("16.8"), Date: "2025-02-26"},
	}
}

// FallbackBook returns the built-in list as a Book
func FallbackBook() *Book {
	return NewBook(Fallback(), SourceFallback)
}

// Load makes a single attempt to read the feed and falls back to the built-in list
// on any failure. It never returns a nil Book.
func Load(ctx context.Context, fetcher Fetcher, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := fetcher.FetchPrices(ctx)
	if err == nil {
		book := NewBook(entries, SourceRemote)
		if book.Len() >= MinEntries {
			logger.Debug("loaded price feed",
				zap.Int("entries", len(entries)),
				zap.Int("tokens", book.Len()))
			return book
		}
		err = fmt.Errorf("price feed has %d usable entries, need at least %d", book.Len(), MinEntries)
	}

	logger.Warn("price feed unavailable, using built-in prices", zap.Error(err))
	return FallbackBook()
}
