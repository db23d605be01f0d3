package cmd

import (
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/tui"
	"github.com/vuzo-ai/vzdash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	client, cfg := newClient()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so lipgloss doesn't fall back to the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(client, time.Duration(cfg.Watch.IntervalSec)*time.Second)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
