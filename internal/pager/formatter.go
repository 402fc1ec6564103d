package pager

import "unicode/utf8"

// Block is one rendered record: the text shown in the page body and its size
// in bytes. Size is always len(Text); it is carried separately so callers can
// budget pages without re-measuring.
type Block struct {
	Text string
	Size int
}

// Formatter renders a single record into a transport-safe text block.
//
// Implementations must be deterministic: the same record and locale yield a
// byte-identical block on every call. Record values must be escaped so they
// cannot corrupt the transport's markup. A malformed record is reported with
// a *FormatError rather than a panic; the page build skips it and continues.
type Formatter interface {
	Format(r Record) (Block, error)
}

// FormatFunc adapts a plain function to the Formatter interface.
type FormatFunc func(r Record) (Block, error)

// Format implements Formatter.
func (f FormatFunc) Format(r Record) (Block, error) {
	return f(r)
}

// TruncationMarker is appended to a block that had to be cut down to fit the
// byte cap on its own.
const TruncationMarker = "..."

// truncateBlock cuts a block down to at most maxBytes, appending the
// truncation marker. The cut lands on a rune boundary so the result stays
// valid UTF-8. Blocks already within the budget are returned unchanged.
func truncateBlock(b Block, maxBytes int) Block {
	if b.Size <= maxBytes {
		return b
	}
	keep := maxBytes - len(TruncationMarker)
	if keep < 0 {
		keep = 0
	}
	text := b.Text[:keep]
	for len(text) > 0 && !utf8.ValidString(text) {
		text = text[:len(text)-1]
	}
	text += TruncationMarker
	if len(text) > maxBytes {
		// A budget smaller than the marker gets whatever fits of it.
		text = text[:maxBytes]
	}
	return Block{Text: text, Size: len(text)}
}
