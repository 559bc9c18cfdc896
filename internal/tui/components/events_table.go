package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aoctui/internal/client"
	"aoctui/internal/log"
	"aoctui/internal/tui/messages"
	"aoctui/internal/tui/state"
	"aoctui/internal/tui/styles"
	"aoctui/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// FetchFailedMessage is the only failure text the table ever shows.
const FetchFailedMessage = "Failed to fetch events"

const highlightSymbol = ">> "

// tableHeaderHeight is the header line plus its bottom border.
const tableHeaderHeight = 2

// EventsTable lists fetched events and owns the one fetch of the session.
type EventsTable struct {
	ctx     context.Context
	state   *state.ViewState
	fetcher client.Fetcher
	bus     *messages.Bus
	keys    types.KeyMap
	styles  styles.Styles
	table   table.Model
	help    help.Model
	now     func() time.Time
}

// NewEventsTable creates the widget around a fresh ViewState.
func NewEventsTable(ctx context.Context, fetcher client.Fetcher, bus *messages.Bus, keys types.KeyMap, st styles.Styles) *EventsTable {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "   Event", Width: 12},
			{Title: "Stars", Width: 6},
			{Title: "Of", Width: 6},
		}),
		table.WithFocused(true),
	)
	t.SetStyles(st.Table)

	h := help.New()
	h.Styles.ShortKey = st.Help
	h.Styles.ShortDesc = st.Help
	h.Styles.ShortSeparator = st.Help

	return &EventsTable{
		ctx:     ctx,
		state:   state.New(),
		fetcher: fetcher,
		bus:     bus,
		keys:    keys,
		styles:  st,
		table:   t,
		help:    h,
		now:     time.Now,
	}
}

// State exposes the shared view state.
func (e *EventsTable) State() *state.ViewState {
	return e.state
}

// HandleKey scrolls the selection. Other keys are ignored.
func (e *EventsTable) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, e.keys.Down):
		e.state.ScrollDown()
	case key.Matches(msg, e.keys.Up):
		e.state.ScrollUp()
	}
}

// EnsureLoaded starts the fetch the first time it is called while Idle and
// returns nil on every later call.
func (e *EventsTable) EnsureLoaded(token *string) tea.Cmd {
	if !e.state.BeginLoading() {
		return nil
	}
	return e.fetch(token)
}

func (e *EventsTable) fetch(token *string) tea.Cmd {
	return func() tea.Msg {
		e.bus.Send(messages.FetchEvents{})

		events, err := e.fetcher.FetchEvents(e.ctx, token)
		if err != nil {
			log.LogWithError(err).Warn("fetch events failed")
			e.bus.Send(messages.FetchEventsError{Message: FetchFailedMessage})
			return nil
		}

		log.Debugf("fetched %d events", len(events))
		e.bus.Send(messages.SetEvents{Events: events})
		return nil
	}
}

// SetEvents installs the result of a successful fetch.
func (e *EventsTable) SetEvents(events []types.Event) {
	e.state.SetEvents(events, e.now())
}

// SetError records a failed fetch.
func (e *EventsTable) SetError(msg string) {
	e.state.SetError(msg)
}

// View renders the bordered table into a width x height region. A zero
// size renders at natural size.
func (e *EventsTable) View(width, height int) string {
	snap := e.state.Snapshot()

	rows := make([]table.Row, len(snap.Events))
	for i, ev := range snap.Events {
		cells := ev.Row()
		prefix := strings.Repeat(" ", len(highlightSymbol))
		if snap.HasSelection && i == snap.Selected {
			prefix = highlightSymbol
		}
		cells[0] = prefix + cells[0]
		rows[i] = table.Row(cells)
	}
	e.table.SetRows(rows)
	if snap.HasSelection {
		e.table.SetCursor(snap.Selected)
	}

	// border (2) + title (1) + footer (1). The table keeps at least its
	// header; anything still too tall is cut at the region's bottom edge.
	if height > 0 {
		e.table.SetHeight(max(height-4, tableHeaderHeight))
	} else {
		e.table.SetHeight(len(rows) + tableHeaderHeight)
	}

	statusStyle := e.styles.Status
	if snap.Status.State == types.Failed {
		statusStyle = e.styles.StatusError
	}
	title := e.styles.Title.Render("Events") + "  " +
		statusStyle.Render(fmt.Sprintf("Loading: %s", snap.Status))

	footer := e.help.ShortHelpView(e.keys.ShortHelp())
	if snap.Status.State == types.Loaded && !snap.FetchedAt.IsZero() {
		footer += e.styles.Help.Render(" • fetched " + humanize.Time(snap.FetchedAt))
	}

	box := e.styles.Box
	if width > 2 {
		box = box.Width(width - 2)
	}
	if height > 0 {
		box = box.MaxHeight(height)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, e.table.View(), footer))
}
