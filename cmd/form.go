package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"token-swap/pkg/parser"
	"token-swap/pkg/swap"
)

const formCommands = `Commands:
  sell <amount>        type into the sell field (buy side is derived)
  buy <amount>         type into the buy field (sell side is derived)
  sell-token <symbol>  pick the sell token (alias: from)
  buy-token <symbol>   pick the buy token (alias: to)
  flip                 exchange the two tokens and amounts
  tab <name>           Swap, Limit, Send or Buy
  connect              connect a wallet
  tokens               list the available tokens
  show                 print the form again
  quit                 leave the form`

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the interactive swap form",
	Long: `Open the swap form and edit it one line at a time. Every change re-derives the
other amount, the USD values and the price impact.

` + formCommands + `

Examples:
  token-swap form
  printf 'sell 1\nto USDT\nflip\n' | token-swap form`,
	Args: cobra.NoArgs,
	Run:  runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, args []string) {
	if outputFormat(cmd) != formatText {
		printError(fmt.Errorf("interactive form does not support structured output"))
		os.Exit(1)
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer env.logger.Sync()

	if err := runFormSession(cmd.Context(), os.Stdin, os.Stdout, env); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// runFormSession reads form commands from in until quit or end of input
func runFormSession(ctx context.Context, in io.Reader, out io.Writer, env *environment) error {
	logger := env.logger.With(zap.String("session", uuid.New().String()))
	logger.Info("form session started",
		zap.String("source", string(env.book.Source())),
		zap.Int("tokens", env.book.Len()))

	state := env.calc.New()
	displayForm(out, env, state)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := newLineReader(ctx, in)
	for {
		fmt.Fprint(out, color.CyanString("swap> "))
		text, err := reader.next(ctx)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			logger.Info("form session closed")
			return nil
		}
		if err != nil {
			fmt.Fprintln(out)
			logger.Info("form session interrupted", zap.Error(err))
			return err
		}

		line, err := parser.ParseFormCommand(text)
		if err != nil {
			printNotice(out, swap.Notice{Message: err.Error(), Kind: swap.NoticeError})
			continue
		}

		logger.Debug("form event", zap.String("verb", string(line.Verb)), zap.String("arg", line.Arg))

		next, changed, quit := applyFormCommand(out, env, state, line)
		if quit {
			logger.Info("form session closed")
			return nil
		}
		if changed {
			state = next
			displayForm(out, env, state)
		}
	}
}

// applyFormCommand performs one form command. It reports whether the form changed
// and whether the session should end.
func applyFormCommand(out io.Writer, env *environment, state swap.FormState, c *parser.FormCommand) (swap.FormState, bool, bool) {
	switch c.Verb {
	case parser.VerbSell:
		return env.calc.EditSell(state, c.Arg), true, false

	case parser.VerbBuy:
		return env.calc.EditBuy(state, c.Arg), true, false

	case parser.VerbSellToken:
		next, err := env.calc.SelectSell(state, c.Arg)
		if err != nil {
			printNotice(out, swap.Notice{Message: err.Error(), Kind: swap.NoticeError})
			return state, false, false
		}
		return next, true, false

	case parser.VerbBuyToken:
		next, err := env.calc.SelectBuy(state, c.Arg)
		if err != nil {
			printNotice(out, swap.Notice{Message: err.Error(), Kind: swap.NoticeError})
			return state, false, false
		}
		return next, true, false

	case parser.VerbFlip:
		return env.calc.Flip(state), true, false

	case parser.VerbTab:
		notice, _ := swap.TabNotice(c.Arg)
		printNotice(out, notice)

	case parser.VerbConnect:
		printNotice(out, swap.ConnectWalletNotice())

	case parser.VerbTokens:
		displayTokenChoices(out, env, state)

	case parser.VerbShow:
		return state, true, false

	case parser.VerbHelp:
		printFormHelp(out)

	case parser.VerbQuit:
		return state, false, true
	}

	return state, false, false
}

// displayTokenChoices lists the tokens the way the form's dropdown does, marking the
// token already taken by each slot
func displayTokenChoices(out io.Writer, env *environment, state swap.FormState) {
	for _, entry := range env.book.Entries() {
		marker := ""
		switch entry.Currency {
		case state.SellCurrency:
			marker = color.HiBlackString("(Sell)")
		case state.BuyCurrency:
			marker = color.HiBlackString("(Buy)")
		}
		fmt.Fprintf(out, "  %-10s %s %s\n", color.YellowString(entry.Currency), formatPrice(entry), marker)
	}
}

func printFormHelp(out io.Writer) {
	fmt.Fprintln(out, formCommands)
}
