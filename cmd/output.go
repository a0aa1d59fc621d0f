package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"token-swap/pkg/prices"
	"token-swap/pkg/swap"
	"token-swap/pkg/types"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func init() {
	// Prices are printed as JSON numbers, the same shape the feed serves
	decimal.MarshalJSONWithoutQuotes = true
}

func outputFormat(cmd *cobra.Command) string {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return formatJSON
	}
	if yamlOutput, _ := cmd.Flags().GetBool("yaml"); yamlOutput {
		return formatYAML
	}
	return formatText
}

// printStructured writes v as indented JSON or YAML
func printStructured(w io.Writer, v interface{}, format string) error {
	switch format {
	case formatJSON:
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(w, string(jsonData))
	case formatYAML:
		yamlData, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		fmt.Fprint(w, string(yamlData))
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

func printNotice(w io.Writer, notice swap.Notice) {
	var c *color.Color
	switch notice.Kind {
	case swap.NoticeError:
		c = color.New(color.FgRed)
	case swap.NoticeSuccess:
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.FgBlue)
	}
	c.Fprintf(w, "  » %s\n", notice.Message)
}

func printFallbackBanner(w io.Writer, book *prices.Book) {
	if book.Source() != prices.SourceFallback {
		return
	}
	color.New(color.FgYellow).Fprintln(w, "\nPrice feed unavailable, showing built-in prices.")
}

// getColoredImpact colours the impact line by bucket
func getColoredImpact(state swap.FormState) string {
	text := swap.FormatImpact(state.PriceImpact)

	switch swap.LevelOf(state.PriceImpact) {
	case swap.ImpactSevere:
		return color.RedString("Very high price impact (%s)", text)
	case swap.ImpactHigh:
		return color.YellowString("High price impact (%s)", text)
	case swap.ImpactNominal:
		return color.GreenString("Price impact (%s)", text)
	default:
		return color.HiBlackString("Price impact (%s)", text)
	}
}

// buildQuoteDisplay flattens a form state for structured output
func buildQuoteDisplay(env *environment, state swap.FormState) types.QuoteDisplay {
	rate, _ := env.calc.Rate(state)
	return types.QuoteDisplay{
		SellAmount:  state.SellAmount,
		SellToken:   state.SellCurrency,
		SellValue:   state.SellValue.StringFixed(2),
		BuyAmount:   state.BuyAmount,
		BuyToken:    state.BuyCurrency,
		BuyValue:    state.BuyValue.StringFixed(2),
		Rate:        rate,
		PriceImpact: state.PriceImpact.StringFixed(2),
		Fee:         swap.NetworkFee.StringFixed(2),
		PriceSource: string(env.book.Source()),
	}
}

func displayForm(w io.Writer, env *environment, state swap.FormState) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	color.New(color.FgGreen).Fprintln(w, "                         SWAP")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\n  Sell:              %s %s\n", orZero(state.SellAmount), color.YellowString(state.SellCurrency))
	fmt.Fprintf(w, "                     %s\n", color.HiBlackString(swap.FormatUSD(state.SellValue)))
	fmt.Fprintf(w, "  Buy:               %s %s\n", orZero(state.BuyAmount), color.YellowString(state.BuyCurrency))
	fmt.Fprintf(w, "                     %s\n", color.HiBlackString(swap.FormatUSD(state.BuyValue)))

	if rate, ok := env.calc.Rate(state); ok {
		fmt.Fprintf(w, "\n  Rate:              1 %s = %s %s\n", state.SellCurrency, rate, state.BuyCurrency)
	}
	fmt.Fprintf(w, "  Impact:            %s\n", getColoredImpact(state))
	fmt.Fprintf(w, "  Network Fee:       %s\n", swap.FormatUSD(swap.NetworkFee))

	printFallbackBanner(w, env.book)

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
}

func orZero(amount string) string {
	if amount == "" {
		return "0"
	}
	return amount
}
