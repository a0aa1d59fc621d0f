package swap

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-swap/pkg/prices"
	"token-swap/pkg/types"
)

func newTestCalculator() *Calculator {
	return NewCalculator(prices.FallbackBook(), DefaultPlaces)
}

func TestCalculator_New(t *testing.T) {
	state := newTestCalculator().New()

	assert.Equal(t, "GROK3", state.SellCurrency)
	assert.Equal(t, "ETH", state.BuyCurrency)
	assert.Empty(t, state.SellAmount)
	assert.Empty(t, state.BuyAmount)
	assert.True(t, state.SellValue.IsZero())
}

func TestNewCalculator_NegativePlaces(t *testing.T) {
	assert.Equal(t, DefaultPlaces, NewCalculator(prices.FallbackBook(), -1).Places())
	assert.Equal(t, int32(2), NewCalculator(prices.FallbackBook(), 2).Places())
}

func TestCalculator_EditSell(t *testing.T) {
	calc := newTestCalculator()
	state, err := calc.SelectSell(calc.New(), "ETH")
	require.NoError(t, err)
	state, err = calc.SelectBuy(state, "USDT")
	require.NoError(t, err)

	next := calc.EditSell(state, "2 ETH")

	assert.Equal(t, "2", next.SellAmount)
	assert.Equal(t, "5011.78000", next.BuyAmount)
	assert.True(t, next.SellValue.Equal(d("5011.78")))
	assert.True(t, next.BuyValue.Equal(next.SellValue))
	assert.Equal(t, "-0.3", next.PriceImpact.String())

	// Input state is untouched
	assert.Empty(t, state.SellAmount)
	assert.Empty(t, state.BuyAmount)
}

func TestCalculator_EditSell_ImpactBuckets(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, "-98.29", calc.EditSell(calc.New(), "1,500,000").PriceImpact.String())
	assert.Equal(t, "-5.2", calc.EditSell(calc.New(), "150000").PriceImpact.String())
	assert.Equal(t, "-0.3", calc.EditSell(calc.New(), "10").PriceImpact.String())
}

func TestCalculator_EditSell_InvalidClearsDerivedFields(t *testing.T) {
	calc := newTestCalculator()
	state := calc.EditSell(calc.New(), "1000000")
	require.NotEmpty(t, state.BuyAmount)

	for _, input := range []string{"abc", ""} {
		next := calc.EditSell(state, input)
		assert.Empty(t, next.SellAmount, input)
		assert.Empty(t, next.BuyAmount, input)
		assert.True(t, next.SellValue.IsZero(), input)
		assert.True(t, next.BuyValue.IsZero(), input)
		assert.True(t, next.PriceImpact.IsZero(), input)
	}
}

func TestCalculator_EditBuy(t *testing.T) {
	calc := newTestCalculator()
	state, err := calc.SelectSell(calc.New(), "USDT")
	require.NoError(t, err)
	state, err = calc.SelectBuy(state, "ETH")
	require.NoError(t, err)

	next := calc.EditBuy(state, "2")

	assert.Equal(t, "2", next.BuyAmount)
	assert.Equal(t, "5011.78000", next.SellAmount)
	assert.True(t, next.BuyValue.Equal(d("5011.78")))
	assert.True(t, next.SellValue.Equal(next.BuyValue))
	assert.Equal(t, "-0.3", next.PriceImpact.String())
}

func TestCalculator_EditBuy_ImpactFollowsDerivedSellAmount(t *testing.T) {
	calc := newTestCalculator()

	// 10 ETH bought with GROK3 needs roughly 294.8 million GROK3
	next := calc.EditBuy(calc.New(), "10")
	assert.Equal(t, "-98.29", next.PriceImpact.String())
}

func TestCalculator_EditBuy_InvalidClearsDerivedFields(t *testing.T) {
	calc := newTestCalculator()
	state := calc.EditBuy(calc.New(), "1")
	require.NotEmpty(t, state.SellAmount)

	next := calc.EditBuy(state, "abc")
	assert.Empty(t, next.BuyAmount)
	assert.Empty(t, next.SellAmount)
	assert.True(t, next.SellValue.IsZero())
	assert.True(t, next.BuyValue.IsZero())
	assert.True(t, next.PriceImpact.IsZero())
}

func TestCalculator_EditSell_UnknownCurrencyKeepsAmount(t *testing.T) {
	calc := newTestCalculator()
	state := FormState{SellCurrency: "DOGE", BuyCurrency: "ETH", BuyAmount: "3"}

	next := calc.EditSell(state, "5")

	assert.Equal(t, "5", next.SellAmount)
	assert.Equal(t, "3", next.BuyAmount)
}

func TestCalculator_EditSell_PricesThroughBook(t *testing.T) {
	calc := newTestCalculator()
	state := FormState{SellCurrency: "eth", BuyCurrency: "usdt"}

	next := calc.EditSell(state, "1")

	assert.Equal(t, "2505.89000", next.BuyAmount)
	assert.True(t, next.SellValue.Equal(d("2505.89")))
}

func TestCalculator_SelectSell_SwapsOnCollision(t *testing.T) {
	calc := newTestCalculator()
	state := calc.New()

	next, err := calc.SelectSell(state, "ETH")
	require.NoError(t, err)

	assert.Equal(t, "ETH", next.SellCurrency)
	assert.Equal(t, "GROK3", next.BuyCurrency)
}

func TestCalculator_SelectBuy_SwapsOnCollision(t *testing.T) {
	calc := newTestCalculator()
	state := calc.New()

	next, err := calc.SelectBuy(state, "grok3")
	require.NoError(t, err)

	assert.Equal(t, "ETH", next.SellCurrency)
	assert.Equal(t, "GROK3", next.BuyCurrency)
}

func TestCalculator_Select_NoCollision(t *testing.T) {
	calc := newTestCalculator()

	next, err := calc.SelectSell(calc.New(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, "BTC", next.SellCurrency)
	assert.Equal(t, "ETH", next.BuyCurrency)

	next, err = calc.SelectBuy(next, "LINK")
	require.NoError(t, err)
	assert.Equal(t, "BTC", next.SellCurrency)
	assert.Equal(t, "LINK", next.BuyCurrency)
}

func TestCalculator_Select_UnknownCurrency(t *testing.T) {
	calc := newTestCalculator()
	state := calc.New()

	next, err := calc.SelectSell(state, "DOGE")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assert.Equal(t, state, next)

	_, err = calc.SelectBuy(state, "DOGE")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestCalculator_Select_RederivesFromSellAmount(t *testing.T) {
	calc := newTestCalculator()
	state, err := calc.SelectSell(calc.New(), "ETH")
	require.NoError(t, err)
	state = calc.EditSell(state, "1")

	next, err := calc.SelectBuy(state, "USDT")
	require.NoError(t, err)

	assert.Equal(t, "1", next.SellAmount)
	assert.Equal(t, "2505.89000", next.BuyAmount)
	assert.True(t, next.BuyValue.Equal(d("2505.89")))
}

func TestCalculator_Flip(t *testing.T) {
	calc := newTestCalculator()
	state, err := calc.SelectSell(calc.New(), "ETH")
	require.NoError(t, err)
	state, err = calc.SelectBuy(state, "USDT")
	require.NoError(t, err)
	state = calc.EditSell(state, "1")

	flipped := calc.Flip(state)

	assert.Equal(t, "USDT", flipped.SellCurrency)
	assert.Equal(t, "ETH", flipped.BuyCurrency)
	assert.Equal(t, "2505.89000", flipped.SellAmount)
	assert.Equal(t, "1", flipped.BuyAmount)
	assert.Equal(t, types.DirectionBuy, flipped.Edited)
	assert.True(t, flipped.SellValue.Equal(d("2505.89")))
	assert.True(t, flipped.BuyValue.Equal(d("2505.89")))
}

func TestCalculator_FlipKeepsTypedAmount(t *testing.T) {
	calc := newTestCalculator()
	state := calc.EditSell(calc.New(), "1000")
	require.Equal(t, "0.00003", state.BuyAmount)

	flipped := calc.Flip(state)
	assert.Equal(t, "ETH", flipped.SellCurrency)
	assert.Equal(t, "1000", flipped.BuyAmount)
	assert.Equal(t, "0.00003", flipped.SellAmount)
	assert.True(t, flipped.BuyValue.Equal(d("0.085")), "buy value %s", flipped.BuyValue)

	twice := calc.Flip(flipped)
	assert.Equal(t, "GROK3", twice.SellCurrency)
	assert.Equal(t, "1000", twice.SellAmount)
	assert.Equal(t, "0.00003", twice.BuyAmount)
	assert.True(t, twice.SellValue.Equal(d("0.085")), "sell value %s", twice.SellValue)
	assert.Equal(t, types.DirectionSell, twice.Edited)
}

func TestCalculator_FlipAfterBuyEdit(t *testing.T) {
	calc := newTestCalculator()
	state := calc.EditBuy(calc.New(), "1")
	require.Equal(t, "29481058.82353", state.SellAmount)

	flipped := calc.Flip(state)
	assert.Equal(t, "1", flipped.SellAmount)
	assert.Equal(t, "29481058.82353", flipped.BuyAmount)

	twice := calc.Flip(flipped)
	assert.Equal(t, "1", twice.BuyAmount)
	assert.Equal(t, "29481058.82353", twice.SellAmount)
}

func TestCalculator_Select_RederivesFromBuyAmount(t *testing.T) {
	calc := newTestCalculator()
	state, err := calc.SelectSell(calc.New(), "USDT")
	require.NoError(t, err)
	state = calc.EditBuy(state, "2")

	next, err := calc.SelectSell(state, "LINK")
	require.NoError(t, err)

	assert.Equal(t, "2", next.BuyAmount)
	assert.Equal(t, "298.32024", next.SellAmount)
}

func TestCalculator_FlipTwiceRestoresSelection(t *testing.T) {
	calc := newTestCalculator()
	for _, amount := range []string{"", "7", "123456.789"} {
		state := calc.EditSell(calc.New(), amount)

		twice := calc.Flip(calc.Flip(state))

		assert.Equal(t, state.SellCurrency, twice.SellCurrency)
		assert.Equal(t, state.BuyCurrency, twice.BuyCurrency)
	}
}

func TestCalculator_FlipWithEmptySell(t *testing.T) {
	calc := newTestCalculator()
	state := calc.New()
	state.BuyAmount = "4"

	flipped := calc.Flip(state)

	assert.Equal(t, "4", flipped.SellAmount)
	assert.Equal(t, "ETH", flipped.SellCurrency)
	assert.NotEmpty(t, flipped.BuyAmount)
	assert.True(t, flipped.SellValue.Equal(d("10023.56")))
}

func TestCalculator_Rate(t *testing.T) {
	calc := newTestCalculator()
	state, err := calc.SelectSell(calc.New(), "BTC")
	require.NoError(t, err)
	state, err = calc.SelectBuy(state, "USDT")
	require.NoError(t, err)

	rate, ok := calc.Rate(state)
	require.True(t, ok)
	assert.Equal(t, "96540.12000000", rate)

	_, ok = calc.Rate(FormState{SellCurrency: "DOGE", BuyCurrency: "ETH"})
	assert.False(t, ok)
}

func TestFormState_ValueSemantics(t *testing.T) {
	calc := newTestCalculator()
	a := calc.EditSell(calc.New(), "1")
	b := a
	b.SellValue = decimal.NewFromInt(42)

	assert.False(t, a.SellValue.Equal(b.SellValue))
}
