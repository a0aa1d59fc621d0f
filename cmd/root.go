package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"token-swap/config"
	"token-swap/pkg/client"
	"token-swap/pkg/logging"
	"token-swap/pkg/prices"
	"token-swap/pkg/swap"
)

var rootCmd = &cobra.Command{
	Use:   "token-swap",
	Short: "A currency-swap form over a public token price feed",
	Long: `token-swap fetches USD prices for a list of tokens and works out how much of one
token you would get for another. It is a form only: nothing is ever traded and no
wallet is involved. When the price feed cannot be reached a built-in list of five
tokens is used instead.

Examples:
  token-swap prices
  token-swap quote 1 ETH to USDT
  token-swap quote 0.5 BTC to ETH --reverse
  token-swap form`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("yaml", false, "Output in YAML format")
	rootCmd.PersistentFlags().String("prices-url", client.DefaultPricesURL, "Price feed URL")
	rootCmd.PersistentFlags().Int32("precision", swap.DefaultPlaces, "Decimals of derived amounts")

	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	_ = viper.BindPFlag("prices_url", rootCmd.PersistentFlags().Lookup("prices-url"))
	_ = viper.BindPFlag("precision", rootCmd.PersistentFlags().Lookup("precision"))
}

// environment is what every command needs once configuration and prices are loaded
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	book   *prices.Book
	calc   *swap.Calculator
}

// loadEnvironment reads configuration, builds the logger and makes the single price
// feed attempt, showing a spinner while it runs.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, err
	}

	apiClient := client.NewPriceClient(cfg.PricesURL, cfg.RequestTimeout)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if outputFormat(cmd) == formatText {
		s.Suffix = " Loading prices..."
		s.Start()
	}

	book, err := fetchBook(cmd.Context(), apiClient, logger)
	s.Stop()
	if err != nil {
		return nil, err
	}

	logger.Debug("prices ready",
		zap.String("url", apiClient.URL()),
		zap.String("source", string(book.Source())),
		zap.Int("tokens", book.Len()))

	return &environment{
		cfg:    cfg,
		logger: logger,
		book:   book,
		calc:   swap.NewCalculator(book, cfg.Precision),
	}, nil
}

// fetchBook makes the single feed attempt. An interrupt during the attempt is
// reported instead of falling back to the built-in prices.
func fetchBook(ctx context.Context, fetcher prices.Fetcher, logger *zap.Logger) (*prices.Book, error) {
	book := prices.Load(ctx, fetcher, logger)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("loading prices interrupted: %w", err)
	}
	return book, nil
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
