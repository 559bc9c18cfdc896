package views

import (
	"aoctui/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// TitleBarHeight is the number of rows the bordered title bar occupies.
const TitleBarHeight = 3

// RenderMainView draws the title bar above the active screen.
func RenderMainView(title string, st styles.Styles, width int, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, RenderTitleBar(title, st, width), body)
}

// RenderTitleBar draws title inside a single-line bordered box.
func RenderTitleBar(title string, st styles.Styles, width int) string {
	bar := st.TitleBar
	if width > 2 {
		bar = bar.Width(width - 2)
	}
	return bar.Render(title)
}
