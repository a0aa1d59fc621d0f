package swap

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"token-swap/pkg/types"
)

// RatePlaces is the precision of the unit exchange rate
const RatePlaces int32 = 8

// ErrUnknownCurrency is returned when a selected symbol is not in the price book
var ErrUnknownCurrency = errors.New("unknown currency")

// PriceBook is the read side of a loaded price list
type PriceBook interface {
	Lookup(symbol string) (types.PriceEntry, bool)
	Price(symbol string) (decimal.Decimal, bool)
	Defaults() (sell, buy string)
}

// FormState is one snapshot of the swap form. Calculator methods never modify the
// state they receive; they return the next one.
type FormState struct {
	SellCurrency string          `json:"sell_currency" yaml:"sell_currency"`
	BuyCurrency  string          `json:"buy_currency" yaml:"buy_currency"`
	SellAmount   string          `json:"sell_amount" yaml:"sell_amount"`
	BuyAmount    string          `json:"buy_amount" yaml:"buy_amount"`
	SellValue    decimal.Decimal `json:"sell_value_usd" yaml:"sell_value_usd"`
	BuyValue     decimal.Decimal `json:"buy_value_usd" yaml:"buy_value_usd"`
	PriceImpact  decimal.Decimal `json:"price_impact_percent" yaml:"price_impact_percent"`

	// Edited is the field the user last typed into; the other amount is derived
	Edited types.Direction `json:"edited" yaml:"edited"`
}

// Calculator applies form events against a price book
type Calculator struct {
	book   PriceBook
	places int32
}

// NewCalculator creates a calculator. A negative places falls back to DefaultPlaces.
func NewCalculator(book PriceBook, places int32) *Calculator {
	if places < 0 {
		places = DefaultPlaces
	}
	return &Calculator{
		book:   book,
		places: places,
	}
}

// Places returns the number of decimals used for derived amounts
func (c *Calculator) Places() int32 {
	return c.places
}

// New returns the initial form: the book's default pair and empty amounts
func (c *Calculator) New() FormState {
	sell, buy := c.book.Defaults()
	return FormState{
		SellCurrency: sell,
		BuyCurrency:  buy,
	}
}

// prices resolves both sides of the form
func (c *Calculator) prices(s FormState) (sell, buy decimal.Decimal, ok bool) {
	sellPrice, sellOK := c.book.Price(s.SellCurrency)
	buyPrice, buyOK := c.book.Price(s.BuyCurrency)
	if !sellOK || !buyOK {
		return decimal.Zero, decimal.Zero, false
	}
	return sellPrice, buyPrice, true
}

// EditSell handles typing into the sell field
func (c *Calculator) EditSell(s FormState, text string) FormState {
	s.SellAmount = Sanitize(text)
	s.Edited = types.DirectionSell

	sellPrice, buyPrice, ok := c.prices(s)
	conv := Convert(s.SellAmount, sellPrice, buyPrice, c.places)
	if !conv.Valid {
		if _, valid := ParseAmount(s.SellAmount); valid && !ok {
			// Number typed but a side has no price: leave derived fields alone
			return s
		}
		s.SellValue = decimal.Zero
		s.BuyAmount = ""
		s.BuyValue = decimal.Zero
		s.PriceImpact = decimal.Zero
		return s
	}

	s.SellValue = conv.Value
	s.BuyAmount = conv.Counter
	s.BuyValue = conv.Value
	s.PriceImpact = PriceImpact(conv.Amount)
	return s
}

// EditBuy handles typing into the buy field; the sell side is derived
func (c *Calculator) EditBuy(s FormState, text string) FormState {
	s.BuyAmount = Sanitize(text)
	s.Edited = types.DirectionBuy

	sellPrice, buyPrice, ok := c.prices(s)
	conv := Convert(s.BuyAmount, buyPrice, sellPrice, c.places)
	if !conv.Valid {
		if _, valid := ParseAmount(s.BuyAmount); valid && !ok {
			return s
		}
		s.BuyValue = decimal.Zero
		s.SellAmount = ""
		s.SellValue = decimal.Zero
		s.PriceImpact = decimal.Zero
		return s
	}

	s.BuyValue = conv.Value
	s.SellAmount = conv.Counter
	s.SellValue = conv.Value

	sold, _ := ParseAmount(conv.Counter)
	s.PriceImpact = PriceImpact(sold)
	return s
}

// SelectSell picks the sell token. Picking the current buy token swaps the two slots.
func (c *Calculator) SelectSell(s FormState, symbol string) (FormState, error) {
	entry, ok := c.book.Lookup(symbol)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownCurrency, symbol)
	}

	if entry.Currency == s.BuyCurrency {
		s.BuyCurrency = s.SellCurrency
	}
	s.SellCurrency = entry.Currency

	return c.refresh(s), nil
}

// SelectBuy picks the buy token. Picking the current sell token swaps the two slots.
func (c *Calculator) SelectBuy(s FormState, symbol string) (FormState, error) {
	entry, ok := c.book.Lookup(symbol)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownCurrency, symbol)
	}

	if entry.Currency == s.SellCurrency {
		s.SellCurrency = s.BuyCurrency
	}
	s.BuyCurrency = entry.Currency

	return c.refresh(s), nil
}

// Flip exchanges the two tokens and the two amounts, then re-derives the other side
// from the amount the user typed, which moves to the opposite field.
func (c *Calculator) Flip(s FormState) FormState {
	s.SellCurrency, s.BuyCurrency = s.BuyCurrency, s.SellCurrency
	s.SellAmount, s.BuyAmount = s.BuyAmount, s.SellAmount
	s.SellValue, s.BuyValue = s.BuyValue, s.SellValue

	switch s.Edited {
	case types.DirectionSell:
		s.Edited = types.DirectionBuy
	case types.DirectionBuy:
		s.Edited = types.DirectionSell
	}

	return c.refresh(s)
}

// refresh re-derives the form from the field the user typed into. A state with no
// recorded edit is derived from the sell side.
func (c *Calculator) refresh(s FormState) FormState {
	if s.Edited == types.DirectionBuy && s.BuyAmount != "" {
		return c.EditBuy(s, s.BuyAmount)
	}
	if s.SellAmount == "" {
		return s
	}
	return c.EditSell(s, s.SellAmount)
}

// Rate returns how many buy tokens one sell token is worth, to RatePlaces decimals
func (c *Calculator) Rate(s FormState) (string, bool) {
	sellPrice, buyPrice, ok := c.prices(s)
	if !ok {
		return "", false
	}
	conv := Convert("1", sellPrice, buyPrice, RatePlaces)
	return conv.Counter, conv.Valid
}
