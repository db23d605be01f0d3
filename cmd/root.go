package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/vuzo-ai/vzdash/internal/config"
	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/session"
	"github.com/vuzo-ai/vzdash/internal/usage"

	"github.com/spf13/cobra"
)

var (
	flagRange    string
	flagModel    string
	flagProvider string
	flagBaseURL  string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "vzdash",
	Short: "Vuzo gateway usage & billing dashboard",
	Long:  "Inspect your Vuzo API gateway account from the terminal: usage, costs, credit balance, and API keys.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRange, "range", "r", "30d", "Date range: today, 7d, 30d, all")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Filter to a model name")
	rootCmd.PersistentFlags().StringVarP(&flagProvider, "provider", "p", "", "Filter to a provider (openai, anthropic, google)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Gateway base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// newClient builds the gateway client from flags, env, and config — shared
// wiring for every command.
func newClient() (*gateway.Client, config.Config) {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
	}

	baseURL := flagBaseURL
	if baseURL == "" {
		baseURL = config.BaseURL(cfg)
	}

	sessions := session.NewStore(config.SessionPath())
	return gateway.NewClient(baseURL, sessions), cfg
}

// currentFilter resolves the persistent filter flags into a usage filter as
// of now.
func currentFilter() (usage.Filter, error) {
	preset, err := usage.ParsePreset(flagRange)
	if err != nil {
		return usage.Filter{}, err
	}
	f := usage.Filter{
		Model:    flagModel,
		Provider: flagProvider,
	}
	return f.WithPreset(preset, time.Now()), nil
}

func progress(msg string) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s\n", msg)
	}
}
