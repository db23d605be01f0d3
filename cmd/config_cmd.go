package cmd

import (
	"fmt"

	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize vzdash configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(_ *cobra.Command, _ []string) error {
		if config.Exists() {
			return fmt.Errorf("config already exists at %s", config.ConfigPath())
		}
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Println("  Wrote " + config.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	first, second := config.RefreshDelays(cfg)

	fmt.Println()
	fmt.Println(cli.RenderStat("Config file", config.ConfigPath()))
	fmt.Println(cli.RenderStat("Session file", config.SessionPath()))
	fmt.Println(cli.RenderStat("Snapshot cache", config.CachePath()))
	baseURL := config.BaseURL(cfg)
	if baseURL == "" {
		baseURL = "(default)"
	}
	fmt.Println(cli.RenderStat("Gateway URL", baseURL))
	fmt.Println(cli.RenderStat("Checkout refreshes", fmt.Sprintf("%s, %s", first, second)))
	fmt.Println(cli.RenderStat("Watch interval", fmt.Sprintf("%ds", cfg.Watch.IntervalSec)))
	fmt.Println(cli.RenderStat("Theme", cfg.Appearance.Theme))
	return nil
}
