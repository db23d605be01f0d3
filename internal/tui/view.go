package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/tui/theme"
)

// View renders the whole dashboard.
func (a App) View() string {
	t := theme.Active

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.renderTabBar())
	b.WriteString("\n\n")

	if !a.loaded {
		if a.loadErr != nil {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Red).Render(a.loadErr.Error()) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("  %s Loading dashboard...\n", a.spinner.View()))
		}
		b.WriteString("\n")
		b.WriteString(a.renderStatusBar())
		return b.String()
	}

	switch a.activeTab {
	case tabOverview:
		b.WriteString(a.renderOverview())
	case tabUsage:
		b.WriteString(a.renderUsage())
	case tabDaily:
		b.WriteString(a.renderDaily())
	case tabBilling:
		b.WriteString(a.renderBilling())
	case tabKeys:
		b.WriteString(a.renderKeys())
	}

	for _, an := range a.anomalies {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Yellow).Render("⚠ "+an.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderTabBar() string {
	t := theme.Active
	active := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(t.TextMuted)

	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == a.activeTab {
			parts = append(parts, active.Render("["+label+"]"))
		} else {
			parts = append(parts, inactive.Render(" "+label+" "))
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (a App) renderStatusBar() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextDim)

	status := fmt.Sprintf("  [f]range:%s  [r]efresh  [q]uit", rangeCycle[a.rangeIdx])
	if a.refreshing {
		status += "  " + a.spinner.View()
	} else if !a.lastRefresh.IsZero() {
		status += "  updated " + a.lastRefresh.Format("15:04:05")
	}
	if a.loadErr != nil && a.loaded {
		status += "  " + lipgloss.NewStyle().Foreground(t.Red).Render("refresh failed, data may be stale")
	}
	return style.Render(status)
}

func (a App) renderOverview() string {
	t := theme.Active
	var b strings.Builder

	balance := "—"
	if a.hasBalance {
		balance = cli.FormatBalance(a.balance)
	}
	b.WriteString(renderCard("Credit Balance", balance, t.Accent))
	b.WriteString("\n")

	s := a.view.Summary
	b.WriteString(renderCard("Requests", cli.FormatNumber(s.TotalRequests), t.TextPrimary))
	b.WriteString(renderCard("Input Tokens", cli.FormatTokens(s.TotalInputTokens), t.TextPrimary))
	b.WriteString(renderCard("Output Tokens", cli.FormatTokens(s.TotalOutputTokens), t.TextPrimary))
	b.WriteString(renderCard("Total Spend", cli.FormatCost(s.TotalVuzoCost), t.Green))
	b.WriteString("\n")
	return b.String()
}

func renderCard(label, value string, valueColor lipgloss.Color) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor).Bold(true)
	return fmt.Sprintf("  %s  %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), valueStyle.Render(value))
}

func (a App) renderUsage() string {
	if len(a.view.Records) == 0 {
		return "  No usage in this window.\n"
	}

	rows := make([][]string, 0, len(a.view.Records))
	for _, r := range a.view.Records {
		rows = append(rows, []string{
			r.Model,
			r.Provider,
			cli.FormatNumber(r.InputTokens),
			cli.FormatNumber(r.OutputTokens),
			cli.FormatCost(r.VuzoCost),
			cli.FormatLatency(r.ResponseTimeMs),
			cli.FormatTime(r.CreatedAt),
		})
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Provider", "Input", "Output", "Cost", "Latency", "Time"},
		Rows:    a.clampRows(rows),
	})
}

func (a App) renderDaily() string {
	if len(a.view.Daily) == 0 {
		return "  No data for the selected period.\n"
	}

	rows := make([][]string, 0, len(a.view.Daily))
	for _, d := range a.view.Daily {
		rows = append(rows, []string{
			d.Date,
			d.Model,
			d.Provider,
			cli.FormatNumber(d.TotalRequests),
			cli.FormatTokens(d.InputTokens + d.OutputTokens),
			cli.FormatCost(d.TotalCost),
		})
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Model", "Provider", "Requests", "Tokens", "Cost"},
		Rows:    a.clampRows(rows),
	})
}

func (a App) renderBilling() string {
	if a.ledger == nil {
		return "  Billing data unavailable.\n"
	}
	if len(a.ledger.Transactions) == 0 {
		return "  No transactions yet.\n"
	}

	rows := make([][]string, 0, len(a.ledger.Transactions))
	for _, tx := range a.ledger.Transactions {
		rows = append(rows, []string{
			tx.Type,
			cli.FormatSignedCost(tx.Amount),
			tx.Description,
			cli.FormatTime(tx.CreatedAt),
		})
	}

	out := cli.RenderTable(cli.Table{
		Headers: []string{"Type", "Amount", "Description", "Date"},
		Rows:    a.clampRows(rows),
	})
	t := theme.Active
	for _, an := range a.ledger.Anomalies {
		out += "  " + lipgloss.NewStyle().Foreground(t.Yellow).Render("⚠ "+an.Error()) + "\n"
	}
	return out
}

func (a App) renderKeys() string {
	if len(a.keys) == 0 {
		return "  No API keys. Create one with `vzdash keys create`.\n"
	}

	rows := make([][]string, 0, len(a.keys))
	for _, k := range a.keys {
		status := "active"
		if !k.IsActive {
			status = "revoked"
		}
		rows = append(rows, []string{
			k.Name,
			k.KeyPrefix + "...",
			status,
			fmt.Sprintf("%d", k.RateLimitRPM),
			cli.FormatTime(k.CreatedAt),
			cli.FormatDate(k.LastUsedAt),
		})
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Prefix", "Status", "RPM", "Created", "Last used"},
		Rows:    a.clampRows(rows),
	})
}

// clampRows trims long tables to the visible terminal height.
func (a App) clampRows(rows [][]string) [][]string {
	if a.height == 0 {
		return rows
	}
	max := a.height - 10
	if max < 3 {
		max = 3
	}
	if len(rows) > max {
		return rows[:max]
	}
	return rows
}
