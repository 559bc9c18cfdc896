// Package messages defines the signals exchanged between the TUI core,
// its widgets and background work, and the bus that carries them.
package messages

import (
	"context"
	"time"

	"aoctui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Signal is something the core applies to its own state.
type Signal interface {
	signal()
}

// SetInputMode switches between navigation and text entry.
type SetInputMode struct {
	Mode types.Mode
}

// SetSessionToken stores the token and moves to the events screen.
type SetSessionToken struct {
	Token string
}

// FetchEvents reports that a background fetch has started.
type FetchEvents struct{}

// FetchEventsError reports a failed fetch with a displayable message.
type FetchEventsError struct {
	Message string
}

// SetEvents delivers the records of a successful fetch.
type SetEvents struct {
	Events []types.Event
}

func (SetInputMode) signal()     {}
func (SetSessionToken) signal()  {}
func (FetchEvents) signal()      {}
func (FetchEventsError) signal() {}
func (SetEvents) signal()        {}

// SignalMsg carries one Signal into the bubbletea update loop.
type SignalMsg struct {
	Signal Signal
}

// TickMsg is sent at the redraw cadence.
type TickMsg struct {
	Time time.Time
}

// Tick returns a command that delivers a TickMsg after one frame at fps.
func Tick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// DefaultBusSize is the signal buffer used by NewBus.
const DefaultBusSize = 64

// Bus is the channel every signal travels through. The core is its only
// reader; anything may write. Sending after Close panics, which only
// happens if a sender outlives the core.
type Bus struct {
	ch chan Signal
}

// NewBus creates a Bus with room for size pending signals.
func NewBus(size int) *Bus {
	if size <= 0 {
		size = DefaultBusSize
	}
	return &Bus{ch: make(chan Signal, size)}
}

// Send queues sig, blocking while the buffer is full.
func (b *Bus) Send(sig Signal) {
	b.ch <- sig
}

// SendContext queues sig unless ctx ends first.
func (b *Bus) SendContext(ctx context.Context, sig Signal) error {
	select {
	case b.ch <- sig:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post returns a command that sends sig off the update goroutine.
func (b *Bus) Post(sig Signal) tea.Cmd {
	return func() tea.Msg {
		b.Send(sig)
		return nil
	}
}

// Listen returns a command that waits for the next signal. The core
// re-issues it after handling each SignalMsg.
func (b *Bus) Listen() tea.Cmd {
	return func() tea.Msg {
		sig, ok := <-b.ch
		if !ok {
			return nil
		}
		return SignalMsg{Signal: sig}
	}
}

// Len returns the number of queued signals.
func (b *Bus) Len() int {
	return len(b.ch)
}

// Close ends Listen. Only the owner of the core may call it.
func (b *Bus) Close() {
	close(b.ch)
}
