package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"token-swap/pkg/prices"
	"token-swap/pkg/swap"
	"token-swap/pkg/types"
)

var priceCmd = &cobra.Command{
	Use:   "price <symbol>",
	Short: "Show the price of a single token",
	Long: `Show the USD price and quote date of one token. The symbol match is exact
first, then case-insensitive.

Examples:
  token-swap price ETH
  token-swap price statom
  token-swap price BTC --json`,
	Args: cobra.ExactArgs(1),
	Run:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) {
	env, err := loadEnvironment(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer env.logger.Sync()

	entry, ok := env.book.Lookup(args[0])
	if !ok {
		printError(fmt.Errorf("%w: %s (try: token-swap prices)", swap.ErrUnknownCurrency, args[0]))
		os.Exit(1)
	}

	format := outputFormat(cmd)
	if format != formatText {
		if err := printStructured(os.Stdout, entry, format); err != nil {
			printError(err)
			os.Exit(1)
		}
		return
	}

	displayPrice(os.Stdout, env.book, entry)
}

func displayPrice(w io.Writer, book *prices.Book, entry types.PriceEntry) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	color.New(color.FgGreen).Fprintln(w, "                       TOKEN PRICE")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\n  Token:             %s\n", color.YellowString(entry.Currency))
	fmt.Fprintf(w, "  Price:             %s\n", formatPrice(entry))
	fmt.Fprintf(w, "  Quoted At:         %s\n", color.HiBlackString(entry.Date))
	fmt.Fprintf(w, "  Source:            %s\n", getColoredSource(book.Source()))

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60)+"\n")
}

func getColoredSource(source prices.Source) string {
	switch source {
	case prices.SourceRemote:
		return color.GreenString(string(source))
	case prices.SourceFallback:
		return color.YellowString(string(source))
	default:
		return string(source)
	}
}
