package tui

import (
	"context"

	"aoctui/internal/client"
	"aoctui/internal/log"
	"aoctui/internal/tui/components"
	"aoctui/internal/tui/messages"
	"aoctui/internal/tui/styles"
	"aoctui/internal/tui/views"
	"aoctui/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the application core. It alone writes the mode, the active
// widget and the session token; widgets and background work reach it
// through the signal bus.
type Model struct {
	title    string
	mode     types.Mode
	selected types.Widget
	token    *string
	quitting bool

	width  int
	height int
	fps    int

	keys   types.KeyMap
	styles styles.Styles
	bus    *messages.Bus

	events *components.EventsTable
	config *components.TokenInput
}

// Option customises a Model.
type Option func(*options)

type options struct {
	ctx    context.Context
	fps    int
	styles styles.Styles
	bus    *messages.Bus
}

// WithContext sets the context passed to fetches.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithFPS sets the redraw cadence.
func WithFPS(fps int) Option {
	return func(o *options) { o.fps = fps }
}

// WithStyles replaces the default theme.
func WithStyles(st styles.Styles) Option {
	return func(o *options) { o.styles = st }
}

// WithBus supplies the signal bus, so other goroutines can post to it.
func WithBus(bus *messages.Bus) Option {
	return func(o *options) { o.bus = bus }
}

// New creates the core. With a token it opens on the events table,
// otherwise on token entry. Mode starts Normal either way.
func New(title string, token *string, fetcher client.Fetcher, opts ...Option) *Model {
	o := options{
		ctx:    context.Background(),
		fps:    60,
		styles: styles.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = messages.NewBus(messages.DefaultBusSize)
	}

	keys := types.DefaultKeyMap()
	m := &Model{
		title:    title,
		mode:     types.Normal,
		selected: types.Config,
		fps:      o.fps,
		keys:     keys,
		styles:   o.styles,
		bus:      o.bus,
		events:   components.NewEventsTable(o.ctx, fetcher, o.bus, keys, o.styles),
		config:   components.NewTokenInput(o.bus, keys, o.styles),
	}
	if token != nil {
		t := *token
		m.token = &t
		m.selected = types.Events
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{messages.Tick(m.fps), m.bus.Listen()}
	if m.selected == types.Config {
		cmds = append(cmds, m.config.Focus())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.SetWidth(msg.Width)
		return m, nil

	case messages.TickMsg:
		return m, tea.Batch(m.ensureLoaded(), messages.Tick(m.fps))

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case messages.SignalMsg:
		cmd := m.apply(msg.Signal)
		return m, tea.Batch(cmd, m.bus.Listen())
	}

	if m.selected == types.Config {
		return m, m.config.Update(msg)
	}
	return m, nil
}

// ensureLoaded is the per-frame hook of the events screen.
func (m *Model) ensureLoaded() tea.Cmd {
	if m.selected != types.Events {
		return nil
	}
	return m.events.EnsureLoaded(m.token)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if (m.mode == types.Normal && key.Matches(msg, m.keys.Quit)) || key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return tea.Quit
	}

	switch m.selected {
	case types.Config:
		return m.config.HandleKey(msg)
	case types.Events:
		m.events.HandleKey(msg)
	}
	return nil
}

func (m *Model) apply(sig messages.Signal) tea.Cmd {
	switch sig := sig.(type) {
	case messages.SetInputMode:
		m.mode = sig.Mode
	case messages.SetSessionToken:
		token := sig.Token
		m.token = &token
		m.mode = types.Normal
		m.selected = types.Events
		log.Info("session token set")
	case messages.FetchEvents:
		log.Debugf("fetching events")
	case messages.FetchEventsError:
		m.events.SetError(sig.Message)
	case messages.SetEvents:
		m.events.SetEvents(sig.Events)
	default:
		log.Warnf("unhandled signal %T", sig)
	}
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.selected {
	case types.Config:
		body = m.config.View(m.width)
	default:
		body = m.events.View(m.width, m.bodyHeight())
	}
	return views.RenderMainView(m.title, m.styles, m.width, body)
}

// bodyHeight is 0 until the terminal size is known, which renders the
// screen at its natural size.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-views.TitleBarHeight, 1)
}

// CursorPosition returns where the terminal cursor sits on the token screen.
// ok is false on the events screen, which has no cursor.
func (m *Model) CursorPosition() (x, y int, ok bool) {
	if m.selected != types.Config {
		return 0, 0, false
	}
	// The token box sits under the title bar and its own title line.
	x, y = m.config.Cursor(0, views.TitleBarHeight+1)
	return x, y, true
}

// Mode returns the current input mode.
func (m *Model) Mode() types.Mode {
	return m.mode
}

// SelectedWidget returns the active screen.
func (m *Model) SelectedWidget() types.Widget {
	return m.selected
}

// Token returns the session token, or nil when none has been set.
func (m *Model) Token() *string {
	return m.token
}

// Quitting reports whether a quit key has been handled.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Events returns the events table widget.
func (m *Model) Events() *components.EventsTable {
	return m.events
}

// TokenInput returns the token entry widget.
func (m *Model) TokenInput() *components.TokenInput {
	return m.config
}

// Bus returns the signal bus.
func (m *Model) Bus() *messages.Bus {
	return m.bus
}
