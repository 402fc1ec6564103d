package roster

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/message"

	"github.com/rshade/rosterbot/internal/pager"
)

// Field names a renderable participant attribute for visibility decisions.
type Field string

// Renderable participant fields.
const (
	FieldEmail Field = "email"
	FieldPhone Field = "phone"
	FieldTable Field = "table"
	FieldNotes Field = "notes"
)

// FieldMask decides whether a field may be shown to the current viewer.
// Access policy lives outside this package; the formatter only honors the
// decision. ShowAll is the permissive default.
type FieldMask func(f Field) bool

// ShowAll is the FieldMask that hides nothing.
func ShowAll(Field) bool { return true }

// Formatter renders participants as HTML-safe chat blocks with localized
// labels. It is deterministic for a fixed participant and locale, and every
// participant-supplied value is escaped so markup can never leak into the
// transport.
type Formatter struct {
	printer *message.Printer
	mask    FieldMask
}

// NewFormatter builds a formatter for the given locale. A nil mask means
// ShowAll.
func NewFormatter(locale string, mask FieldMask) *Formatter {
	if mask == nil {
		mask = ShowAll
	}
	return &Formatter{printer: NewPrinter(locale), mask: mask}
}

// Format implements pager.Formatter.
func (f *Formatter) Format(r pager.Record) (pager.Block, error) {
	p, ok := r.(*Participant)
	if !ok {
		return pager.Block{}, &pager.FormatError{
			RecordID: r.RecordID(),
			Err:      fmt.Errorf("unexpected record type %T", r),
		}
	}
	if err := p.Validate(); err != nil {
		return pager.Block{}, &pager.FormatError{RecordID: p.ID, Err: err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> - %s",
		html.EscapeString(p.FullName()),
		html.EscapeString(roleLabel(f.printer, p.Role)))

	if f.mask(FieldEmail) && p.Email != "" {
		fmt.Fprintf(&b, "\n%s: %s", f.printer.Sprintf(msgEmail), html.EscapeString(p.Email))
	}
	if f.mask(FieldPhone) && p.Phone != "" {
		fmt.Fprintf(&b, "\n%s: %s", f.printer.Sprintf(msgPhone), html.EscapeString(p.Phone))
	}
	if f.mask(FieldTable) && p.Table > 0 {
		fmt.Fprintf(&b, "\n%s: %d", f.printer.Sprintf(msgTable), p.Table)
	}
	if f.mask(FieldNotes) && p.Notes != "" {
		fmt.Fprintf(&b, "\n%s: <i>%s</i>", f.printer.Sprintf(msgNotes), html.EscapeString(p.Notes))
	}

	text := b.String()
	return pager.Block{Text: text, Size: len(text)}, nil
}

// Envelope builds the localized page envelope for this formatter's locale.
func (f *Formatter) Envelope() pager.Envelope {
	printer := f.printer
	return pager.Envelope{
		Header: func(first, last, total int) string {
			return printer.Sprintf(msgHeader, first, last, total)
		},
		EmptyText:       printer.Sprintf(msgEmpty),
		UnavailableText: printer.Sprintf(msgUnavailable),
	}
}

// RetryText returns the localized retry affordance shown on a source outage.
func (f *Formatter) RetryText() string {
	return f.printer.Sprintf(msgRetry)
}
