package client

import (
	"io"
	"net/url"
	"strings"

	"aoctui/internal/errors"
	"aoctui/pkg/types"

	"github.com/PuerkitoBio/goquery"
)

// Selectors used against the events listing.
const (
	EventSelector = ".eventlist-event"
	LinkSelector  = "a"
	StarsSelector = ".star-count"
	OutOfSelector = ".star-possible"
)

// ParseEvents extracts events from the listing in document order. Relative
// links are resolved against base when it is non-nil. An event without a
// link fails the whole document.
func ParseEvents(r io.Reader, base *url.URL) ([]types.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.NewParseError("failed to parse html", "", err)
	}

	var (
		events   []types.Event
		parseErr error
	)
	doc.Find(EventSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		link := s.Find(LinkSelector).First()
		if link.Length() == 0 {
			parseErr = errors.Wrapf(errors.NewParseError("event has no link", LinkSelector, nil), "event %d", i)
			return false
		}

		href, _ := link.Attr("href")
		events = append(events, types.Event{
			URL:   resolve(base, href),
			Label: cleanLabel(link.Text()),
			Stars: cleanCount(s.Find(StarsSelector).First().Text()),
			OutOf: cleanCount(s.Find(OutOfSelector).First().Text()),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return events, nil
}

func resolve(base *url.URL, href string) string {
	if base == nil || href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// cleanLabel turns "[2023]" into "2023".
func cleanLabel(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "[]"))
}

// cleanCount turns " 34*" into "34". Missing elements yield "".
func cleanCount(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "*"))
}
