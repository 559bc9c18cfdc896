package styles

import (
	"aoctui/internal/config"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styles groups every style the screens use.
type Styles struct {
	TitleBar    lipgloss.Style
	Title       lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Box         lipgloss.Style
	Help        lipgloss.Style
	Table       table.Styles
}

// Default returns the styles of the default theme.
func Default() Styles {
	return FromConfig(config.New())
}

// FromConfig builds styles from the configured theme colors.
func FromConfig(cfg *config.Config) Styles {
	primary := lipgloss.Color(cfg.Theme.Primary)
	emphasis := lipgloss.Color(cfg.Theme.Emphasis)
	border := lipgloss.Color(cfg.Theme.Border)

	t := table.DefaultStyles()
	t.Header = t.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Foreground(primary).
		Bold(true)
	t.Selected = t.Selected.
		Foreground(emphasis).
		Bold(true)

	return Styles{
		TitleBar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(primary).
			Bold(true).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Error)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Help)),
		Table: t,
	}
}
