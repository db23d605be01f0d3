// Package tui provides the interactive Bubble Tea dashboard for vzdash.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/vuzo-ai/vzdash/internal/billing"
	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/keys"
	"github.com/vuzo-ai/vzdash/internal/model"
	"github.com/vuzo-ai/vzdash/internal/usage"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vuzo-ai/vzdash/internal/tui/theme"
)

// Tab indices.
const (
	tabOverview = iota
	tabUsage
	tabDaily
	tabBilling
	tabKeys
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Usage", "Daily", "Billing", "Keys"}

var rangeCycle = []usage.Preset{usage.PresetToday, usage.PresetWeek, usage.PresetMonth, usage.PresetAllTime}

// dataMsg is sent when a full dashboard refresh completes.
type dataMsg struct {
	view       *usage.View
	anomalies  []model.Anomaly
	balance    float64
	hasBalance bool
	ledger     *billing.Ledger
	keys       []model.APIKey
	err        error
}

// tickMsg drives the auto-refresh timer.
type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	client   *gateway.Client
	loader   *usage.Loader
	balances *billing.BalanceStore
	keyman   *keys.Manager

	rangeIdx int
	filter   usage.Filter

	view       *usage.View
	anomalies  []model.Anomaly
	balance    float64
	hasBalance bool
	ledger     *billing.Ledger
	keys       []model.APIKey

	loaded     bool
	refreshing bool
	loadErr    error

	refreshEvery time.Duration
	lastRefresh  time.Time

	width     int
	height    int
	activeTab int

	spinner spinner.Model
}

// NewApp creates the dashboard model.
func NewApp(client *gateway.Client, refreshEvery time.Duration) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	if refreshEvery < 5*time.Second {
		refreshEvery = 30 * time.Second
	}

	return App{
		client:       client,
		loader:       usage.NewLoader(client),
		balances:     billing.NewBalanceStore(),
		keyman:       keys.NewManager(client),
		rangeIdx:     2, // 30d
		refreshEvery: refreshEvery,
		spinner:      sp,
		refreshing:   true,
	}
}

// Init starts the spinner, the first load, and the refresh ticker.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd(), a.tickCmd())
}

func (a App) tickCmd() tea.Cmd {
	return tea.Tick(a.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd fetches everything the dashboard shows. Usage, billing, and keys
// are independent concerns: a failure in one view keeps whatever the others
// returned, and only the usage view is all-or-nothing internally.
func (a App) loadCmd() tea.Cmd {
	loader := a.loader
	client := a.client
	balances := a.balances
	keyman := a.keyman
	filter := usage.Filter{
		Model:    a.filter.Model,
		Provider: a.filter.Provider,
	}.WithPreset(rangeCycle[a.rangeIdx], time.Now())

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msg := dataMsg{}

		view, err := loader.Load(ctx, filter)
		if errors.Is(err, usage.ErrSuperseded) {
			// A newer filter is already in flight; drop this result on the
			// floor so the consumer never sees a stale window.
			return nil
		}
		if err != nil {
			msg.err = err
		} else {
			msg.view = view
			msg.anomalies = usage.Verify(view)
		}

		if bal, err := balances.Refresh(ctx, client); err == nil {
			msg.balance = bal
			msg.hasBalance = true
		}
		if ledger, err := billing.LoadLedger(ctx, client); err == nil {
			msg.ledger = ledger
		}
		if list, err := keyman.List(ctx); err == nil {
			msg.keys = list
		}

		return msg
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "tab", "l", "right":
			a.activeTab = (a.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			a.activeTab = (a.activeTab + tabCount - 1) % tabCount
		case "1", "2", "3", "4", "5":
			a.activeTab = int(msg.String()[0] - '1')
		case "f":
			a.rangeIdx = (a.rangeIdx + 1) % len(rangeCycle)
			a.refreshing = true
			return a, tea.Batch(a.spinner.Tick, a.loadCmd())
		case "r":
			a.refreshing = true
			return a, tea.Batch(a.spinner.Tick, a.loadCmd())
		}
		return a, nil

	case tickMsg:
		return a, tea.Batch(a.loadCmd(), a.tickCmd())

	case dataMsg:
		a.refreshing = false
		a.loadErr = msg.err
		a.lastRefresh = time.Now()
		if msg.view != nil {
			a.view = msg.view
			a.anomalies = msg.anomalies
			a.loaded = true
		}
		if msg.hasBalance {
			a.balance = msg.balance
			a.hasBalance = true
		}
		if msg.ledger != nil {
			a.ledger = msg.ledger
		}
		if msg.keys != nil {
			a.keys = msg.keys
		}
		return a, nil

	case spinner.TickMsg:
		if !a.refreshing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}
