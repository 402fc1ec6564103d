// Package pager builds size-capped pages from ordered record collections.
//
// Rendered record sizes are unknown until formatting time (localized labels,
// escaping, variable-length fields), so a page is never a fixed number of
// records. BuildPage accumulates rendered blocks until the next one would
// overflow the byte budget and derives the follow-up offset from what was
// actually shown. This keeps forward iteration self-correcting: every record
// is visited exactly once regardless of how much trimming occurs, and a page
// is never empty while records remain (a single oversized record is
// truncated instead).
//
// The package contains:
//   - Formatter: the record-to-text contract
//   - BuildPage: the accumulation algorithm
//   - Envelope: the "items A-B of T" wrapper
//
// All of it is pure and safe for concurrent use across sessions.
package pager
