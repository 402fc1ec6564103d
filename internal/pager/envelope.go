package pager

import (
	"fmt"
	"strings"
)

// HeaderFunc renders the envelope header for a 1-based inclusive display
// range. Implementations typically localize the string; the arguments are
// first item number, last item number, and the collection total.
type HeaderFunc func(first, last, total int) string

// Envelope assembles a page body with its "items A-B of T" header. The
// header and empty-state text are injectable so the presentation layer can
// localize them; zero-value fields fall back to plain English.
type Envelope struct {
	// Header renders the range line above the page body.
	Header HeaderFunc

	// EmptyText is shown when the filtered collection has no records.
	EmptyText string

	// UnavailableText is shown when records exist but none on this page
	// could be rendered.
	UnavailableText string

	// Separator joins the header and the rendered blocks. Empty means
	// DefaultSeparator.
	Separator string
}

// defaultHeader is the fallback header when no HeaderFunc is configured.
func defaultHeader(first, last, total int) string {
	return fmt.Sprintf("items %d-%d of %d", first, last, total)
}

// defaultEmptyText is the fallback empty-state body.
const defaultEmptyText = "nothing to show"

// defaultUnavailableText is the fallback body for a page whose records all
// failed to render.
const defaultUnavailableText = "these entries cannot be shown"

// Render wraps a built page into the final message text. An empty result
// (zero total) yields the empty-state text alone, with no range header. A
// non-empty collection whose page shows nothing — every record on it was
// skipped — yields the unavailable text instead, so the user is not told
// the collection is empty when it is not.
func (e Envelope) Render(res Result) string {
	sep := e.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	if res.Total == 0 {
		if e.EmptyText != "" {
			return e.EmptyText
		}
		return defaultEmptyText
	}
	if res.Displayed == 0 {
		if e.UnavailableText != "" {
			return e.UnavailableText
		}
		return defaultUnavailableText
	}

	header := e.Header
	if header == nil {
		header = defaultHeader
	}

	first := res.Offset + 1
	last := res.Offset + res.Displayed
	parts := make([]string, 0, 2)
	parts = append(parts, header(first, last, res.Total))
	parts = append(parts, strings.Join(res.Items, sep))
	return strings.Join(parts, sep)
}
