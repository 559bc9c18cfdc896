package components

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"aoctui/internal/tui/messages"
	"aoctui/internal/tui/styles"
	"aoctui/pkg/testutils"
	"aoctui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, stub *testutils.StubFetcher) (*EventsTable, *messages.Bus) {
	t.Helper()
	bus := messages.NewBus(8)
	return NewEventsTable(context.Background(), stub, bus, types.DefaultKeyMap(), styles.Default()), bus
}

func signals(bus *messages.Bus) []messages.Signal {
	var out []messages.Signal
	for bus.Len() > 0 {
		out = append(out, bus.Listen()().(messages.SignalMsg).Signal)
	}
	return out
}

func TestEnsureLoadedPostsSignals(t *testing.T) {
	stub := &testutils.StubFetcher{Events: testutils.SampleEvents()}
	table, bus := newTable(t, stub)
	token := "tok"

	cmd := table.EnsureLoaded(&token)
	require.NotNil(t, cmd)
	assert.Equal(t, types.StatusLoading, table.State().Status())
	assert.Nil(t, table.EnsureLoaded(&token))

	assert.Nil(t, cmd())
	assert.Equal(t, []messages.Signal{
		messages.FetchEvents{},
		messages.SetEvents{Events: testutils.SampleEvents()},
	}, signals(bus))

	// The widget does not apply its own result
	assert.Equal(t, types.StatusLoading, table.State().Status())
}

func TestEnsureLoadedFailureHidesCause(t *testing.T) {
	stub := &testutils.StubFetcher{Err: errors.New("dial tcp: no such host")}
	table, bus := newTable(t, stub)

	cmd := table.EnsureLoaded(nil)
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []messages.Signal{
		messages.FetchEvents{},
		messages.FetchEventsError{Message: FetchFailedMessage},
	}, signals(bus))
	require.Len(t, stub.Tokens(), 1)
	assert.Nil(t, stub.Tokens()[0])
}

func TestEventsTableKeys(t *testing.T) {
	table, _ := newTable(t, &testutils.StubFetcher{})

	// Nothing to scroll yet
	table.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, ok := table.State().Selected()
	assert.False(t, ok)

	table.SetEvents(testutils.SampleEvents())
	table.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	idx, _ := table.State().Selected()
	assert.Equal(t, 1, idx)

	table.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	idx, _ = table.State().Selected()
	assert.Equal(t, 1, idx)

	table.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	table.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	idx, _ = table.State().Selected()
	assert.Equal(t, 0, idx)
}

func TestEventsTableView(t *testing.T) {
	table, _ := newTable(t, &testutils.StubFetcher{})
	fetched := time.Date(2026, 12, 1, 5, 0, 0, 0, time.UTC)
	table.now = func() time.Time { return fetched }

	view := testutils.StripANSI(table.View(50, 12))
	assert.Contains(t, view, "Events")
	assert.Contains(t, view, "Loading: Idle")
	assert.Contains(t, view, "Stars")
	assert.NotContains(t, view, ">>")

	table.SetEvents(testutils.SampleEvents())
	table.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	view = testutils.StripANSI(table.View(50, 12))
	assert.Contains(t, view, "Loading: Loaded")
	assert.Contains(t, view, "   2020")
	assert.Contains(t, view, ">> 2021")
	assert.Contains(t, view, "10")
	assert.Contains(t, view, "fetched")

	failed, _ := newTable(t, &testutils.StubFetcher{})
	failed.SetError(FetchFailedMessage)
	view = testutils.StripANSI(failed.View(0, 0))
	assert.Contains(t, view, `Loading: Error("Failed to fetch events")`)
	assert.NotContains(t, view, "2020")
	assert.NotContains(t, view, "fetched")
}

func TestEventsTableViewFitsRegion(t *testing.T) {
	table, _ := newTable(t, &testutils.StubFetcher{})
	var events []types.Event
	for year := 1990; year < 2020; year++ {
		label := fmt.Sprint(year)
		events = append(events, types.Event{URL: "/" + label, Label: label, Stars: "1", OutOf: "50"})
	}
	table.SetEvents(events)

	for _, height := range []int{1, 3, 4, 5, 10, 20} {
		view := table.View(60, height)
		assert.LessOrEqual(t, len(strings.Split(view, "\n")), height, "height %d", height)
	}
	assert.Len(t, strings.Split(table.View(60, 10), "\n"), 10)

	// Natural size shows every record
	view := testutils.StripANSI(table.View(60, 0))
	assert.Contains(t, view, "1990")
	assert.Contains(t, view, "2019")
}
