package types

import "github.com/shopspring/decimal"

// PriceEntry is one row of the price feed
type PriceEntry struct {
	Currency string          `json:"currency" yaml:"currency"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Date     string          `json:"date" yaml:"date"`
}

// Direction tells which amount field the user typed into
type Direction string

const (
	DirectionSell Direction = "sell" // Amount is what the user gives up
	DirectionBuy  Direction = "buy"  // Amount is what the user wants to receive
)

// QuoteRequest represents a user's quote command
type QuoteRequest struct {
	Amount    string
	SellToken string
	BuyToken  string
	Direction Direction
}

// QuoteDisplay holds formatted quote information for display
type QuoteDisplay struct {
	SellAmount  string `json:"sell_amount" yaml:"sell_amount"`
	SellToken   string `json:"sell_token" yaml:"sell_token"`
	SellValue   string `json:"sell_value_usd" yaml:"sell_value_usd"`
	BuyAmount   string `json:"buy_amount" yaml:"buy_amount"`
	BuyToken    string `json:"buy_token" yaml:"buy_token"`
	BuyValue    string `json:"buy_value_usd" yaml:"buy_value_usd"`
	Rate        string `json:"rate" yaml:"rate"`
	PriceImpact string `json:"price_impact_percent" yaml:"price_impact_percent"`
	Fee         string `json:"fee_usd" yaml:"fee_usd"`
	PriceSource string `json:"price_source" yaml:"price_source"`
}
