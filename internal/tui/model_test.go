package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aoctui/internal/tui/components"
	"aoctui/internal/tui/messages"
	"aoctui/pkg/testutils"
	"aoctui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs cmd and any batched commands it expands to, returning the
// messages they produce.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver feeds every queued signal into the model, as the Listen loop would.
func deliver(m *Model) {
	for m.Bus().Len() > 0 {
		m.Update(m.Bus().Listen()())
	}
}

func TestNew(t *testing.T) {
	t.Run("without token opens token entry", func(t *testing.T) {
		m := New("AOC-TUI", nil, &testutils.StubFetcher{})
		assert.Equal(t, types.Normal, m.Mode())
		assert.Equal(t, types.Config, m.SelectedWidget())
		assert.Nil(t, m.Token())
	})

	t.Run("with token opens events", func(t *testing.T) {
		token := "abc"
		m := New("AOC-TUI", &token, &testutils.StubFetcher{})
		assert.Equal(t, types.Normal, m.Mode())
		assert.Equal(t, types.Events, m.SelectedWidget())
		require.NotNil(t, m.Token())
		assert.Equal(t, "abc", *m.Token())

		// The model keeps its own copy
		token = "changed"
		assert.Equal(t, "abc", *m.Token())
	})

	t.Run("init returns commands", func(t *testing.T) {
		m := New("AOC-TUI", nil, &testutils.StubFetcher{})
		assert.NotNil(t, m.Init())
	})
}

func TestTokenFocusRequestsEditing(t *testing.T) {
	m := New("AOC-TUI", nil, &testutils.StubFetcher{})
	exec(m.TokenInput().Focus())
	deliver(m)
	assert.Equal(t, types.Editing, m.Mode())
}

func TestSubmitToken(t *testing.T) {
	for _, token := range []string{"53616c7465645f5f", ""} {
		t.Run("token="+token, func(t *testing.T) {
			m := New("AOC-TUI", nil, &testutils.StubFetcher{})
			m.TokenInput().Focus()
			m.Update(messages.SignalMsg{Signal: messages.SetInputMode{Mode: types.Editing}})

			if token != "" {
				m.Update(keyRunes(token))
			}
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			exec(cmd)
			deliver(m)

			require.NotNil(t, m.Token())
			assert.Equal(t, token, *m.Token())
			assert.Equal(t, types.Normal, m.Mode())
			assert.Equal(t, types.Events, m.SelectedWidget())
			// The buffer is not cleared
			assert.Equal(t, token, m.TokenInput().Value())
		})
	}
}

func TestTokenEditing(t *testing.T) {
	m := New("AOC-TUI", nil, &testutils.StubFetcher{})
	m.TokenInput().Focus()
	m.Update(messages.SignalMsg{Signal: messages.SetInputMode{Mode: types.Editing}})

	m.Update(keyRunes("abd"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(keyRunes("c"))
	assert.Equal(t, "abc", m.TokenInput().Value())

	x, y, ok := m.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, 4, x)
	assert.Equal(t, 5, y)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(keyRunes("X"))
	assert.Equal(t, "aXbc", m.TokenInput().Value())
	x, _, _ = m.CursorPosition()
	assert.Equal(t, 3, x)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	x, _, _ = m.CursorPosition()
	assert.Equal(t, 4, x)
}

func TestQuitKeys(t *testing.T) {
	t.Run("q in editing mode does not quit", func(t *testing.T) {
		m := New("AOC-TUI", nil, &testutils.StubFetcher{})
		m.TokenInput().Focus()
		m.Update(messages.SignalMsg{Signal: messages.SetInputMode{Mode: types.Editing}})

		_, cmd := m.Update(keyRunes("q"))
		assert.False(t, m.Quitting())
		for _, msg := range exec(cmd) {
			assert.NotEqual(t, tea.QuitMsg{}, msg)
		}
		assert.Equal(t, "q", m.TokenInput().Value())
	})

	t.Run("q in normal mode quits", func(t *testing.T) {
		m := New("AOC-TUI", strPtr("tok"), &testutils.StubFetcher{})
		_, cmd := m.Update(keyRunes("q"))
		assert.True(t, m.Quitting())
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})

	for _, mode := range []types.Mode{types.Normal, types.Editing} {
		t.Run("ctrl+c quits in "+mode.String(), func(t *testing.T) {
			m := New("AOC-TUI", nil, &testutils.StubFetcher{})
			m.Update(messages.SignalMsg{Signal: messages.SetInputMode{Mode: mode}})

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			assert.True(t, m.Quitting())
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestFetchOnFirstTick(t *testing.T) {
	stub := &testutils.StubFetcher{Events: testutils.SampleEvents()}
	m := New("AOC-TUI", strPtr("tok"), stub, WithFPS(240))
	st := m.Events().State()

	assert.Equal(t, types.StatusIdle, st.Status())

	_, cmd := m.Update(messages.TickMsg{})
	assert.Equal(t, types.StatusLoading, st.Status())

	exec(cmd)
	deliver(m)

	assert.Equal(t, types.StatusLoaded, st.Status())
	idx, ok := st.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, st.Len())

	require.Len(t, stub.Tokens(), 1)
	require.NotNil(t, stub.Tokens()[0])
	assert.Equal(t, "tok", *stub.Tokens()[0])
}

func TestFetchFailure(t *testing.T) {
	stub := &testutils.StubFetcher{Err: errors.New("connection reset")}
	m := New("AOC-TUI", strPtr("tok"), stub, WithFPS(240))
	st := m.Events().State()

	_, cmd := m.Update(messages.TickMsg{})
	assert.Equal(t, types.StatusLoading, st.Status())
	exec(cmd)
	deliver(m)

	assert.Equal(t, types.StatusError(components.FetchFailedMessage), st.Status())
	assert.Zero(t, st.Len())
	_, ok := st.Selected()
	assert.False(t, ok)

	view := testutils.StripANSI(m.View())
	assert.Contains(t, view, `Loading: Error("Failed to fetch events")`)
	assert.NotContains(t, view, "connection reset")
}

func TestFetchAtMostOnce(t *testing.T) {
	stub := &testutils.StubFetcher{Events: testutils.SampleEvents(), Release: make(chan struct{})}
	m := New("AOC-TUI", strPtr("tok"), stub, WithFPS(240))

	_, first := m.Update(messages.TickMsg{})
	done := make(chan struct{})
	go func() {
		exec(first)
		close(done)
	}()

	// More frames while the fetch is in flight
	for i := 0; i < 5; i++ {
		_, cmd := m.Update(messages.TickMsg{})
		exec(cmd)
	}
	close(stub.Release)
	<-done
	deliver(m)

	// And more once it has finished
	for i := 0; i < 5; i++ {
		_, cmd := m.Update(messages.TickMsg{})
		exec(cmd)
	}

	assert.Equal(t, 1, stub.Calls())
	assert.Equal(t, types.StatusLoaded, m.Events().State().Status())
}

func TestNoFetchOnTokenScreen(t *testing.T) {
	stub := &testutils.StubFetcher{Events: testutils.SampleEvents()}
	m := New("AOC-TUI", nil, stub, WithFPS(240))

	_, cmd := m.Update(messages.TickMsg{})
	exec(cmd)
	assert.Zero(t, stub.Calls())
	assert.Equal(t, types.StatusIdle, m.Events().State().Status())

	// Submitting a token switches screens, and the next frame fetches with it
	m.TokenInput().Focus()
	m.Update(keyRunes("secret"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	exec(cmd)
	deliver(m)

	_, cmd = m.Update(messages.TickMsg{})
	exec(cmd)
	deliver(m)

	require.Equal(t, 1, stub.Calls())
	assert.Equal(t, "secret", *stub.Tokens()[0])
	assert.Equal(t, types.StatusLoaded, m.Events().State().Status())
}

func TestScrollThroughModel(t *testing.T) {
	stub := &testutils.StubFetcher{Events: testutils.SampleEvents()}
	m := New("AOC-TUI", strPtr("tok"), stub, WithFPS(240))
	_, cmd := m.Update(messages.TickMsg{})
	exec(cmd)
	deliver(m)
	st := m.Events().State()

	m.Update(keyRunes("j"))
	idx, _ := st.Selected()
	assert.Equal(t, 1, idx)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	idx, _ = st.Selected()
	assert.Equal(t, 1, idx)

	m.Update(keyRunes("k"))
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	idx, _ = st.Selected()
	assert.Equal(t, 0, idx)
}

func TestView(t *testing.T) {
	t.Run("token screen", func(t *testing.T) {
		m := New("AOC-TUI", nil, &testutils.StubFetcher{})
		m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
		view := testutils.StripANSI(m.View())
		assert.Contains(t, view, "AOC-TUI")
		assert.Contains(t, view, "Enter your session token")
	})

	t.Run("events screen", func(t *testing.T) {
		m := New("AOC-TUI", strPtr("tok"), &testutils.StubFetcher{Events: testutils.SampleEvents()}, WithFPS(240))
		m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

		view := testutils.StripANSI(m.View())
		assert.Contains(t, view, "Loading: Idle")

		_, cmd := m.Update(messages.TickMsg{})
		exec(cmd)
		deliver(m)

		view = testutils.StripANSI(m.View())
		assert.Contains(t, view, "Loading: Loaded")
		assert.Contains(t, view, ">> 2020")
		assert.Contains(t, view, "2021")
		assert.Contains(t, view, "25")
		assert.Contains(t, view, "quit")

		lines := strings.Split(view, "\n")
		assert.Contains(t, lines[1], "AOC-TUI")
		_, _, ok := m.CursorPosition()
		assert.False(t, ok)
	})
}

func TestUnknownMessagesAreIgnored(t *testing.T) {
	m := New("AOC-TUI", strPtr("tok"), &testutils.StubFetcher{})
	type bogus struct{}
	model, cmd := m.Update(bogus{})
	assert.Same(t, m, model)
	assert.Nil(t, cmd)
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New("AOC-TUI", strPtr("tok"), &testutils.StubFetcher{})
	err := Run(ctx, m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(&strings.Builder{}),
		tea.WithoutRenderer(),
	)
	assert.NoError(t, err)
}

func TestLongTokenCursorStaysOnScreen(t *testing.T) {
	m := New("AOC-TUI", nil, &testutils.StubFetcher{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.TokenInput().Focus()
	m.Update(messages.SignalMsg{Signal: messages.SetInputMode{Mode: types.Editing}})
	m.Update(keyRunes(strings.Repeat("f", 128)))

	x, y, ok := m.CursorPosition()
	require.True(t, ok)
	assert.LessOrEqual(t, x, 79)
	assert.Equal(t, 5, y)

	for _, line := range strings.Split(testutils.StripANSI(m.View()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 80)
	}
}

func TestViewFitsShortTerminal(t *testing.T) {
	events := make([]types.Event, 0, 30)
	for i := 0; i < 30; i++ {
		events = append(events, types.Event{Label: strings.Repeat("x", i%5+1)})
	}
	m := New("AOC-TUI", strPtr("tok"), &testutils.StubFetcher{Events: events}, WithFPS(240))
	_, cmd := m.Update(messages.TickMsg{})
	exec(cmd)
	deliver(m)

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
	assert.LessOrEqual(t, len(strings.Split(m.View(), "\n")), 8)
}
