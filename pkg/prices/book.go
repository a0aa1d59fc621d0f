package prices

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"token-swap/pkg/types"
)

// Source records where a Book's entries came from
type Source string

const (
	SourceRemote   Source = "remote"   // Live feed
	SourceFallback Source = "fallback" // Built-in list used when the feed is unavailable
)

// Book is the read-only set of token prices for one session
type Book struct {
	entries []types.PriceEntry
	index   map[string]int
	source  Source
}

// NewBook builds a Book from raw feed entries.
//
// Entries without a symbol or with a non-positive price are dropped. When a symbol
// repeats, the entry with the newest date replaces the earlier one in place.
func NewBook(entries []types.PriceEntry, source Source) *Book {
	b := &Book{
		entries: make([]types.PriceEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		source:  source,
	}

	for _, entry := range entries {
		entry.Currency = strings.TrimSpace(entry.Currency)
		if entry.Currency == "" || !entry.Price.IsPositive() {
			continue
		}

		if i, exists := b.index[entry.Currency]; exists {
			if newer(entry.Date, b.entries[i].Date) {
				b.entries[i] = entry
			}
			continue
		}

		b.index[entry.Currency] = len(b.entries)
		b.entries = append(b.entries, entry)
	}

	return b
}

// newer reports whether date a is strictly later than date b.
// Unparsable dates never win.
func newer(a, b string) bool {
	ta, errA := parseDate(a)
	if errA != nil {
		return false
	}
	tb, errB := parseDate(b)
	if errB != nil {
		return true
	}
	return ta.After(tb)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Entries returns a copy of the entries in feed order
func (b *Book) Entries() []types.PriceEntry {
	out := make([]types.PriceEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of distinct tokens
func (b *Book) Len() int {
	return len(b.entries)
}

// Source returns where the entries came from
func (b *Book) Source() Source {
	return b.source
}

// Lookup finds a token by symbol, trying an exact match before a case-insensitive one
func (b *Book) Lookup(symbol string) (types.PriceEntry, bool) {
	symbol = strings.TrimSpace(symbol)

	if i, exists := b.index[symbol]; exists {
		return b.entries[i], true
	}

	for _, entry := range b.entries {
		if strings.EqualFold(entry.Currency, symbol) {
			return entry, true
		}
	}

	return types.PriceEntry{}, false
}

// Price returns the USD price of a token
func (b *Book) Price(symbol string) (decimal.Decimal, bool) {
	entry, ok := b.Lookup(symbol)
	if !ok {
		return decimal.Zero, false
	}
	return entry.Price, true
}

// Defaults returns the default sell and buy tokens: the first two entries
func (b *Book) Defaults() (sell, buy string) {
	if len(b.entries) > 0 {
		sell = b.entries[0].Currency
	}
	if len(b.entries) > 1 {
		buy = b.entries[1].Currency
	}
	return sell, buy
}

// Filter returns the entries whose symbol contains the given text, ignoring case
func (b *Book) Filter(text string) []types.PriceEntry {
	if text == "" {
		return b.Entries()
	}

	text = strings.ToUpper(text)
	var out []types.PriceEntry
	for _, entry := range b.entries {
		if strings.Contains(strings.ToUpper(entry.Currency), text) {
			out = append(out, entry)
		}
	}
	return out
}
