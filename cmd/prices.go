package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"token-swap/pkg/prices"
	"token-swap/pkg/swap"
	"token-swap/pkg/types"
)

var filterSymbol string

var oneCent = decimal.New(1, -2)

var pricesCmd = &cobra.Command{
	Use:     "prices",
	Aliases: []string{"list-prices", "ls"},
	Short:   "List all tokens and their USD prices",
	Long: `List every token in the price feed with its USD price and quote date.

When a symbol appears more than once in the feed only its most recent price is kept.

Examples:
  token-swap prices
  token-swap prices --symbol usd
  token-swap prices --json`,
	Run: runListPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)

	pricesCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

func runListPrices(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer env.logger.Sync()

	filtered := env.book.Filter(filterSymbol)

	format := outputFormat(cmd)
	if format != formatText {
		if err := printStructured(os.Stdout, filtered, format); err != nil {
			printError(err)
			os.Exit(1)
		}
		return
	}

	displayPrices(os.Stdout, env.book, filtered)
}

func displayPrices(w io.Writer, book *prices.Book, entries []types.PriceEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo tokens found matching the criteria.")
		return
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	color.New(color.FgGreen).Fprintln(w, "                           TOKEN PRICES")
	fmt.Fprintln(w, strings.Repeat("=", 70))

	sell, buy := book.Defaults()
	for _, entry := range entries {
		marker := ""
		switch entry.Currency {
		case sell:
			marker = color.HiBlackString("(default sell)")
		case buy:
			marker = color.HiBlackString("(default buy)")
		}

		fmt.Fprintf(w, "  %-10s  %18s  %-26s %s\n",
			color.YellowString(entry.Currency),
			formatPrice(entry),
			color.HiBlackString(entry.Date),
			marker)
	}

	printFallbackBanner(w, book)

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintf(w, "\nTotal: %d tokens\n\n", len(entries))
}

// formatPrice keeps sub-cent prices readable
func formatPrice(entry types.PriceEntry) string {
	if entry.Price.LessThan(oneCent) {
		return "$" + entry.Price.String()
	}
	return swap.FormatUSD(entry.Price)
}
