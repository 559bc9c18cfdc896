package components

import (
	"aoctui/internal/tui/messages"
	"aoctui/internal/tui/styles"
	"aoctui/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TokenInput is a single-line box for entering the session token.
type TokenInput struct {
	input textinput.Model
	// offset and offsetRight bound the runes the input currently shows.
	// They follow the same rules textinput uses to scroll.
	offset      int
	offsetRight int

	bus    *messages.Bus
	keys   types.KeyMap
	styles styles.Styles
}

// NewTokenInput creates an empty, unfocused token box.
func NewTokenInput(bus *messages.Bus, keys types.KeyMap, st styles.Styles) *TokenInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "session cookie value"

	return &TokenInput{
		input:  ti,
		bus:    bus,
		keys:   keys,
		styles: st,
	}
}

// Focus gives the box the keyboard and asks the core for Editing mode.
func (t *TokenInput) Focus() tea.Cmd {
	return tea.Batch(t.input.Focus(), t.bus.Post(messages.SetInputMode{Mode: types.Editing}))
}

// HandleKey submits on Enter and edits the buffer otherwise. The buffer is
// kept after submitting.
func (t *TokenInput) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, t.keys.Submit) {
		return t.bus.Post(messages.SetSessionToken{Token: t.input.Value()})
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.scroll()
	return cmd
}

// Update forwards non-key messages, such as cursor blinks, to the input.
func (t *TokenInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.scroll()
	return cmd
}

// SetWidth fits the input to a box width cells wide. Longer values scroll
// sideways instead of wrapping. Zero or less disables scrolling.
func (t *TokenInput) SetWidth(width int) {
	// border (2) + cursor cell (1)
	inner := max(width-3, 0)
	if inner == t.input.Width {
		return
	}
	t.input.Width = inner
	// SetCursor makes the input recompute its visible window.
	t.input.SetCursor(t.input.Position())
	t.scroll()
}

// scroll recomputes the visible window after the value, cursor or width
// changed.
func (t *TokenInput) scroll() {
	runes := []rune(t.input.Value())
	pos := t.input.Position()
	width := t.input.Width

	if width <= 0 || lipgloss.Width(string(runes)) <= width {
		t.offset, t.offsetRight = 0, len(runes)
		return
	}

	t.offsetRight = min(t.offsetRight, len(runes))
	switch {
	case pos < t.offset:
		t.offset = pos
		rest := runes[t.offset:]
		cells, i := 0, 0
		for i < len(rest) && cells <= width {
			cells += lipgloss.Width(string(rest[i]))
			if cells <= width+1 {
				i++
			}
		}
		t.offsetRight = t.offset + i
	case pos >= t.offsetRight:
		t.offsetRight = pos
		head := runes[:t.offsetRight]
		cells, i := 0, len(head)-1
		for i > 0 && cells < width {
			cells += lipgloss.Width(string(head[i]))
			if cells <= width {
				i--
			}
		}
		t.offset = t.offsetRight - (len(head) - 1 - i)
	}
}

// Value returns the current buffer.
func (t *TokenInput) Value() string {
	return t.input.Value()
}

// Cursor returns where the terminal cursor belongs when the box is drawn
// with its top-left corner at (originX, originY). Only the scrolled-in part
// of the value counts. The +1 steps over the border.
func (t *TokenInput) Cursor(originX, originY int) (int, int) {
	runes := []rune(t.input.Value())
	pos := min(t.input.Position(), len(runes))
	start := min(t.offset, pos)
	offset := lipgloss.Width(string(runes[start:pos]))
	return originX + offset + 1, originY + 1
}

// View renders the title line and the bordered box.
func (t *TokenInput) View(width int) string {
	t.SetWidth(width)
	box := t.styles.Box
	if width > 2 {
		box = box.Width(width - 2)
	}
	title := t.styles.Title.Render("Enter your session token")
	return lipgloss.JoinVertical(lipgloss.Left, title, box.Render(t.input.View()))
}
