package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"aoctui/pkg/types"
)

// EventsHTML renders events the way the listing page lays them out.
// Empty Stars or OutOf omit the corresponding element.
func EventsHTML(events ...types.Event) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><title>Events</title></head><body><main>\n")
	for _, e := range events {
		sb.WriteString(`<div class="eventlist-event">`)
		sb.WriteString(fmt.Sprintf(`<a href="%s">[%s]</a>`, e.URL, e.Label))
		if e.Stars != "" {
			sb.WriteString(fmt.Sprintf(` <span class="star-count">%s*</span>`, e.Stars))
		}
		if e.OutOf != "" {
			sb.WriteString(fmt.Sprintf(` <span class="star-possible">%s</span>`, e.OutOf))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</main></body></html>\n")
	return sb.String()
}

// SampleEvents returns two events used across tests.
func SampleEvents() []types.Event {
	return []types.Event{
		{URL: "/2020", Label: "2020", Stars: "10", OutOf: "25"},
		{URL: "/2021", Label: "2021", Stars: "0", OutOf: "25"},
	}
}

// StubFetcher is a canned Fetcher that records every call.
type StubFetcher struct {
	Events []types.Event
	Err    error
	// Release, when non-nil, holds each call until it is closed or the
	// context ends.
	Release chan struct{}

	mu     sync.Mutex
	tokens []*string
}

// FetchEvents returns the canned result.
func (s *StubFetcher) FetchEvents(ctx context.Context, token *string) ([]types.Event, error) {
	s.mu.Lock()
	s.tokens = append(s.tokens, token)
	s.mu.Unlock()

	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]types.Event(nil), s.Events...), nil
}

// Calls returns how many fetches were made.
func (s *StubFetcher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// Tokens returns the token passed to each call, in order.
func (s *StubFetcher) Tokens() []*string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*string(nil), s.tokens...)
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
