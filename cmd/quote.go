package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"token-swap/pkg/parser"
	"token-swap/pkg/swap"
	"token-swap/pkg/types"
)

var (
	reverseQuote bool
	noConfirm    bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <sell-token> to <buy-token>",
	Short: "Work out how much of one token another is worth",
	Long: `Fill in the swap form once and print the result.

By default <amount> is what you sell. With --reverse it is what you want to receive
and the sell amount is derived instead. Nothing is traded: the wallet prompt at the
end only tells you that wallet connection is unavailable.

Examples:
  token-swap quote 1 ETH to USDT
  token-swap quote 1500000 GROK3 to ETH
  token-swap quote 2 ETH to BTC --reverse
  token-swap quote 10 LINK to USDT --json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().BoolVarP(&reverseQuote, "reverse", "r", false, "Treat the amount as the buy amount")
	quoteCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip the connect-wallet prompt")
}

func runQuote(cmd *cobra.Command, args []string) {
	// Parse the command
	quoteReq, err := parser.ParseQuoteCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if reverseQuote {
		quoteReq.Direction = types.DirectionBuy
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer env.logger.Sync()

	state, err := fillQuote(env.calc, quoteReq)
	if err != nil {
		printError(fmt.Errorf("%w (try: token-swap prices)", err))
		os.Exit(1)
	}

	env.logger.Debug("quote computed",
		zap.String("sell", state.SellCurrency),
		zap.String("buy", state.BuyCurrency),
		zap.String("sell_amount", state.SellAmount),
		zap.String("buy_amount", state.BuyAmount))

	format := outputFormat(cmd)
	if format != formatText {
		if err := printStructured(os.Stdout, buildQuoteDisplay(env, state), format); err != nil {
			printError(err)
			os.Exit(1)
		}
		return
	}

	displayForm(os.Stdout, env, state)

	if !noConfirm && confirmConnectWallet(cmd.Context(), os.Stdin, os.Stdout) {
		printNotice(os.Stdout, swap.ConnectWalletNotice())
	}
	fmt.Println()
}

// fillQuote runs a quote request through the form: pick both tokens, then type the
// amount into the field the request names.
func fillQuote(calc *swap.Calculator, req *types.QuoteRequest) (swap.FormState, error) {
	if err := parser.ValidateQuoteRequest(req); err != nil {
		return swap.FormState{}, err
	}
	if strings.EqualFold(req.SellToken, req.BuyToken) {
		return swap.FormState{}, fmt.Errorf("sell and buy tokens must differ")
	}

	state, err := calc.SelectSell(calc.New(), req.SellToken)
	if err != nil {
		return state, fmt.Errorf("sell token error: %w", err)
	}
	state, err = calc.SelectBuy(state, req.BuyToken)
	if err != nil {
		return state, fmt.Errorf("buy token error: %w", err)
	}

	if req.Direction == types.DirectionBuy {
		return calc.EditBuy(state, req.Amount), nil
	}
	return calc.EditSell(state, req.Amount), nil
}

// confirmConnectWallet asks once; no answer, end of input or a cancelled ctx is a no
func confirmConnectWallet(ctx context.Context, in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "\nConnect wallet to swap? (y/N): ")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	response, err := newLineReader(ctx, in).next(ctx)
	if err != nil {
		fmt.Fprintln(out)
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
