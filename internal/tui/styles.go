package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorMatch   = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FDE68A"}
	colorError   = lipgloss.Color("#DC2626")
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	colorFocused = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#93C5FD"}
)

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Match    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Pane     lipgloss.Style
	Focused  lipgloss.Style
	LineNo   lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Match:    lipgloss.NewStyle().Bold(true).Foreground(colorMatch).Underline(true),
		Selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorError).Padding(0, 1),
		Pane:     pane,
		Focused:  pane.BorderForeground(colorFocused),
		LineNo:   lipgloss.NewStyle().Foreground(colorMuted).Width(5).Align(lipgloss.Right),
	}
}
