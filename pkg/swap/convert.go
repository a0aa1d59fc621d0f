package swap

import (
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// DefaultPlaces is the number of decimals of a derived counter amount
const DefaultPlaces int32 = 5

var (
	// NetworkFee is the flat fee shown under the form. Display only.
	NetworkFee = decimal.RequireFromString("0.30")

	impactSevere  = decimal.RequireFromString("-98.29")
	impactHigh    = decimal.RequireFromString("-5.2")
	impactNominal = decimal.RequireFromString("-0.3")
	severeAbove   = decimal.NewFromInt(1_000_000)
	highAbove     = decimal.NewFromInt(100_000)
	usdFormat     = accounting.Accounting{Symbol: "$", Precision: 2}
)

// Conversion is the result of converting one amount field into the other
type Conversion struct {
	Amount  decimal.Decimal // Parsed input amount
	Value   decimal.Decimal // USD value of Amount
	Counter string          // Amount of the other token, empty when the input is not a number
	Valid   bool
}

// Sanitize keeps only digits and dots
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
}

// ParseAmount sanitizes text and reads its leading number, ignoring anything from a
// second dot on ("1.2.3" is 1.2). It fails when no digit is found.
func ParseAmount(text string) (decimal.Decimal, bool) {
	s := Sanitize(text)

	end, digits, seenDot := 0, 0, false
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else {
			digits++
		}
		end = i + 1
	}
	if digits == 0 {
		return decimal.Zero, false
	}

	s = strings.TrimSuffix(s[:end], ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Convert prices text in USD with fromPrice and expresses that value in the token
// priced at toPrice, rounded to places decimals.
func Convert(text string, fromPrice, toPrice decimal.Decimal, places int32) Conversion {
	amount, ok := ParseAmount(text)
	if !ok || !toPrice.IsPositive() {
		return Conversion{Value: decimal.Zero}
	}

	value := amount.Mul(fromPrice)
	return Conversion{
		Amount:  amount,
		Value:   value,
		Counter: value.Div(toPrice).StringFixed(places),
		Valid:   true,
	}
}

// PriceImpact is the illustrative impact percentage shown for a sell amount.
// The buckets are fixed display values, not a liquidity model.
func PriceImpact(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.GreaterThan(severeAbove):
		return impactSevere
	case amount.GreaterThan(highAbove):
		return impactHigh
	default:
		return impactNominal
	}
}

// ImpactLevel is the display bucket of a price impact
type ImpactLevel int

const (
	ImpactNone ImpactLevel = iota
	ImpactNominal
	ImpactHigh
	ImpactSevere
)

// LevelOf maps an impact produced by PriceImpact back to its bucket
func LevelOf(impact decimal.Decimal) ImpactLevel {
	switch {
	case impact.IsZero():
		return ImpactNone
	case impact.LessThanOrEqual(impactSevere):
		return ImpactSevere
	case impact.LessThanOrEqual(impactHigh):
		return ImpactHigh
	default:
		return ImpactNominal
	}
}

// FormatUSD renders a dollar value with thousands separators and two decimals
func FormatUSD(value decimal.Decimal) string {
	return usdFormat.FormatMoneyDecimal(value)
}

// FormatImpact renders an impact percentage with two decimals
func FormatImpact(impact decimal.Decimal) string {
	return impact.StringFixed(2) + "%"
}
