// Package theme defines color themes for the vzdash TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name        string
	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color
	Accent      lipgloss.Color
	Green       lipgloss.Color
	Red         lipgloss.Color
	Yellow      lipgloss.Color
}

// Active is the currently selected theme.
var Active = VuzoDark

// VuzoDark matches the web dashboard's zinc/indigo palette.
var VuzoDark = Theme{
	Name:        "vuzo-dark",
	Background:  lipgloss.Color("#09090B"),
	Surface:     lipgloss.Color("#18181B"),
	Border:      lipgloss.Color("#27272A"),
	TextDim:     lipgloss.Color("#52525B"),
	TextMuted:   lipgloss.Color("#A1A1AA"),
	TextPrimary: lipgloss.Color("#FAFAFA"),
	Accent:      lipgloss.Color("#818CF8"),
	Green:       lipgloss.Color("#34D399"),
	Red:         lipgloss.Color("#F87171"),
	Yellow:      lipgloss.Color("#FBBF24"),
}

// VuzoLight is the same palette flipped for light terminals.
var VuzoLight = Theme{
	Name:        "vuzo-light",
	Background:  lipgloss.Color("#FAFAFA"),
	Surface:     lipgloss.Color("#F4F4F5"),
	Border:      lipgloss.Color("#D4D4D8"),
	TextDim:     lipgloss.Color("#A1A1AA"),
	TextMuted:   lipgloss.Color("#52525B"),
	TextPrimary: lipgloss.Color("#18181B"),
	Accent:      lipgloss.Color("#4F46E5"),
	Green:       lipgloss.Color("#059669"),
	Red:         lipgloss.Color("#DC2626"),
	Yellow:      lipgloss.Color("#D97706"),
}

// All lists the available themes.
var All = []Theme{VuzoDark, VuzoLight}

// SetActive switches the active theme by name; unknown names keep the
// current theme.
func SetActive(name string) {
	for _, t := range All {
		if t.Name == name {
			Active = t
			return
		}
	}
}
