package pager

import (
	"github.com/rs/zerolog"
)

// DefaultSeparator joins rendered blocks within a page body.
const DefaultSeparator = "\n\n"

// Request describes one page build: where the batch starts in the filtered
// collection and how many bytes the transport allows.
type Request struct {
	// Filter identifies the subset and order being browsed.
	Filter Filter

	// Offset is the 0-based index of the first record in the batch.
	Offset int

	// CapBytes is the hard transport size limit for the whole message.
	CapBytes int

	// HeaderReserveBytes is held back from CapBytes for the envelope header.
	HeaderReserveBytes int

	// Separator joins blocks in the page body. Empty means DefaultSeparator.
	Separator string
}

// usable returns the byte budget left for the page body.
func (r Request) usable() int {
	return r.CapBytes - r.HeaderReserveBytes
}

// separator returns the configured block separator or the default.
func (r Request) separator() string {
	if r.Separator == "" {
		return DefaultSeparator
	}
	return r.Separator
}

// Result is one built page.
//
// Displayed always equals len(Items). Consumed counts records taken from the
// batch, including any skipped for format errors, so the follow-up offset
// never re-reads a poisoned record. When no record is skipped, Consumed and
// Displayed are equal and NextOffset is Offset+Displayed.
type Result struct {
	// Items holds the rendered blocks in collection order.
	Items []string

	// Offset is the request offset the page was built at.
	Offset int

	// Displayed is the number of rendered blocks, always len(Items).
	Displayed int

	// Consumed is the number of batch records accounted for by this page.
	Consumed int

	// Total is the size of the filtered collection at fetch time.
	Total int

	// NextOffset is the offset of the first record of the following page.
	// Meaningful only when HasMore is true.
	NextOffset int

	// HasMore reports whether records remain past this page.
	HasMore bool
}

// BuildPage assembles one page from a batch of records fetched at
// req.Offset. The page size is never fixed in advance: blocks accumulate
// until the next one would overflow the byte budget, and the follow-up
// offset is derived from what was actually consumed. A record that would
// overflow an otherwise empty page is truncated and included anyway, so a
// page is never empty while records remain.
//
// Records that fail to format are skipped, logged, and still advance the
// offset. BuildPage is pure apart from the diagnostic log and is safe to
// call concurrently across sessions.
func BuildPage(req Request, batch []Record, total int, f Formatter, logger zerolog.Logger) (Result, error) {
	if req.usable() <= 0 {
		return Result{}, ErrInvalidCap
	}

	sep := req.separator()
	res := Result{Offset: req.Offset, Total: total}
	used := 0

	for _, rec := range batch {
		block, err := f.Format(rec)
		if err != nil {
			logger.Warn().
				Str("component", "pager").
				Int64("record_id", rec.RecordID()).
				Err(err).
				Msg("skipping unrenderable record")
			res.Consumed++
			continue
		}

		need := block.Size
		if len(res.Items) > 0 {
			need += len(sep)
		}

		if used+need > req.usable() {
			if len(res.Items) > 0 {
				// Normal trimming: this record opens the next page.
				break
			}
			// A single oversized record: truncate rather than render an
			// empty page, preserving forward progress. The page ends here.
			block = truncateBlock(block, req.usable())
			res.Items = append(res.Items, block.Text)
			res.Consumed++
			break
		}

		res.Items = append(res.Items, block.Text)
		used += need
		res.Consumed++
	}

	res.Displayed = len(res.Items)
	if req.Offset+res.Consumed < total {
		res.NextOffset = req.Offset + res.Consumed
		res.HasMore = true
	}
	return res, nil
}
