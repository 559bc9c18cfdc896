// Package state holds the events view state shared between the update loop
// and background fetches.
package state

import (
	"sync"
	"time"

	"aoctui/pkg/types"
)

// ViewState guards the records, the loading status and the selection.
// Every method takes the lock for the duration of the call only.
type ViewState struct {
	mu        sync.RWMutex
	events    []types.Event
	status    types.LoadingStatus
	selected  int // -1 when nothing is selected
	fetchedAt time.Time
}

// Snapshot is a copy of ViewState taken under the read lock.
type Snapshot struct {
	Events       []types.Event
	Status       types.LoadingStatus
	Selected     int
	HasSelection bool
	FetchedAt    time.Time
}

// New returns an Idle, empty ViewState.
func New() *ViewState {
	return &ViewState{selected: -1}
}

// BeginLoading moves Idle to Loading and reports whether it did. Any other
// status is left alone, so at most one caller ever gets true.
func (s *ViewState) BeginLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.State != types.Idle {
		return false
	}
	s.status = types.StatusLoading
	return true
}

// SetEvents installs fetched records and marks the state Loaded. The first
// record is selected when there is one.
func (s *ViewState) SetEvents(events []types.Event, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]types.Event(nil), events...)
	s.status = types.StatusLoaded
	s.fetchedAt = at
	if len(s.events) > 0 {
		s.selected = 0
	} else {
		s.selected = -1
	}
}

// SetError marks the fetch as failed with msg.
func (s *ViewState) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = types.StatusError(msg)
}

// ScrollDown moves the selection forward by one, stopping at the last record.
func (s *ViewState) ScrollDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return
	}
	if s.selected < len(s.events)-1 {
		s.selected++
	}
}

// ScrollUp moves the selection back by one, stopping at the first record.
func (s *ViewState) ScrollUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return
	}
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = 0
	}
}

// Selected returns the selected index, if any.
func (s *ViewState) Selected() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected >= 0
}

// Status returns the current loading status.
func (s *ViewState) Status() types.LoadingStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Len returns the number of records.
func (s *ViewState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Snapshot copies the state for rendering.
func (s *ViewState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Events:       append([]types.Event(nil), s.events...),
		Status:       s.status,
		Selected:     s.selected,
		HasSelection: s.selected >= 0,
		FetchedAt:    s.fetchedAt,
	}
}
