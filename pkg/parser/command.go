package parser

import (
	"fmt"
	"regexp"
	"strings"

	"token-swap/pkg/swap"
	"token-swap/pkg/types"
)

// Pattern: <amount> <sell_token> TO <buy_token>
// Matches: "1 ETH to USDT", "1.5 bNEO TO BTC", ".25 GROK3 to LINK", "1,500,000 GROK3 to ETH"
var quotePattern = regexp.MustCompile(`(?i)^((?:\d[\d,]*)?\.?\d+|\d[\d,]*\.)\s+([A-Za-z0-9._-]+)\s+to\s+([A-Za-z0-9._-]+)$`)

// ParseQuoteCommand parses a natural language quote command
// Examples:
//   - "quote 1 ETH to USDT"
//   - "1.5 BTC to ETH"
//   - "100 USDC to stATOM"
//
// Token symbols keep their case since the feed mixes cases (bNEO, stATOM).
func ParseQuoteCommand(command string) (*types.QuoteRequest, error) {
	command = strings.Join(strings.Fields(command), " ")

	// Remove the word "QUOTE" if present at the beginning
	if len(command) > 6 && strings.EqualFold(command[:6], "quote ") {
		command = command[6:]
	}

	matches := quotePattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid quote command format. Expected: 'quote <amount> <token> to <token>' (e.g., 'quote 1 ETH to USDT')")
	}

	return &types.QuoteRequest{
		Amount:    swap.Sanitize(matches[1]),
		SellToken: matches[2],
		BuyToken:  matches[3],
		Direction: types.DirectionSell,
	}, nil
}

// ValidateQuoteRequest validates that a quote request has all required fields
func ValidateQuoteRequest(req *types.QuoteRequest) error {
	if req.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if req.SellToken == "" {
		return fmt.Errorf("sell token is required")
	}
	if req.BuyToken == "" {
		return fmt.Errorf("buy token is required")
	}
	if req.Direction != types.DirectionSell && req.Direction != types.DirectionBuy {
		return fmt.Errorf("direction must be 'sell' or 'buy'")
	}
	return nil
}
