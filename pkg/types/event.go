package types

import (
	"fmt"
	"strings"
)

// Event is one entry scraped from the events listing.
// Values are never mutated after the client builds them.
type Event struct {
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label" yaml:"label"`
	Stars string `json:"stars" yaml:"stars"`
	OutOf string `json:"out_of" yaml:"out_of"`
}

// Row returns the cells shown for the event in a table: label, stars earned
// and stars possible.
func (e Event) Row() []string {
	return []string{e.Label, e.Stars, e.OutOf}
}

// String returns a human-readable representation
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Label)
	if e.Stars != "" || e.OutOf != "" {
		sb.WriteString(fmt.Sprintf(" %s/%s", e.Stars, e.OutOf))
	}
	if e.URL != "" {
		sb.WriteString(" (" + e.URL + ")")
	}
	return sb.String()
}
