package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-swap/pkg/prices"
	"token-swap/pkg/types"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.000085", formatPrice(types.PriceEntry{Price: decimal.RequireFromString("0.000085")}))
	assert.Equal(t, "$0.01", formatPrice(types.PriceEntry{Price: decimal.RequireFromString("0.01")}))
	assert.Equal(t, "$2,505.89", formatPrice(types.PriceEntry{Price: decimal.RequireFromString("2505.89")}))
}

func TestPrintStructured_PricesAsNumbers(t *testing.T) {
	entries := prices.FallbackBook().Filter("ETH")

	var out bytes.Buffer
	require.NoError(t, printStructured(&out, entries, formatJSON))
	assert.Contains(t, out.String(), `"price": 2505.89`)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 2505.89, decoded[0]["price"])

	// Output decodes back into the feed type
	var roundTrip []types.PriceEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &roundTrip))
	assert.True(t, roundTrip[0].Price.Equal(decimal.RequireFromString("2505.89")))
}

func TestDisplayPrices(t *testing.T) {
	book := prices.FallbackBook()

	var out bytes.Buffer
	displayPrices(&out, book, book.Filter("t"))

	got := out.String()
	assert.Contains(t, got, "(default buy)")
	assert.NotContains(t, got, "(default sell)")
	assert.Contains(t, got, "Total: 3 tokens")
	assert.Contains(t, got, "Price feed unavailable, showing built-in prices.")
}

func TestDisplayPrices_Empty(t *testing.T) {
	var out bytes.Buffer
	displayPrices(&out, prices.FallbackBook(), nil)

	assert.Contains(t, out.String(), "No tokens found matching the criteria.")
}

func TestDisplayPrice(t *testing.T) {
	book := prices.NewBook([]types.PriceEntry{
		{Currency: "bNEO", Price: decimal.RequireFromString("7.1"), Date: "2023-08-29T07:10:40.000Z"},
		{Currency: "USDC", Price: decimal.RequireFromString("1"), Date: "2023-08-29T07:10:40.000Z"},
	}, prices.SourceRemote)

	entry, ok := book.Lookup("bneo")
	assert.True(t, ok)

	var out bytes.Buffer
	displayPrice(&out, book, entry)

	got := out.String()
	assert.Contains(t, got, "bNEO")
	assert.Contains(t, got, "$7.10")
	assert.Contains(t, got, "2023-08-29T07:10:40.000Z")
	assert.Contains(t, got, "remote")
	assert.NotContains(t, got, "built-in")
}
