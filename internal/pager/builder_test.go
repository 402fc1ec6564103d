package pager

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRecord is a minimal record for builder tests.
type testRecord struct {
	id   int64
	text string
}

func (r testRecord) RecordID() int64 { return r.id }

// plainFormatter renders a record's text verbatim.
var plainFormatter = FormatFunc(func(r Record) (Block, error) {
	tr, ok := r.(testRecord)
	if !ok {
		return Block{}, errors.New("unexpected record type")
	}
	return Block{Text: tr.text, Size: len(tr.text)}, nil
})

// fixedRecords builds n records whose rendered blocks are exactly size bytes.
func fixedRecords(n, size int) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("rec-%04d|", i)
		text := label + strings.Repeat("x", size-len(label))
		records = append(records, testRecord{id: int64(i), text: text})
	}
	return records
}

func testRequest(offset int) Request {
	return Request{
		Offset:             offset,
		CapBytes:           400,
		HeaderReserveBytes: 20,
	}
}

// ---------------------------------------------------------------------------
// BuildPage: accumulation and trimming
// ---------------------------------------------------------------------------

func TestBuildPageAccumulatesUntilCap(t *testing.T) {
	// 380 usable bytes, 50-byte blocks, 2-byte separator: seven blocks use
	// 362 bytes and an eighth would need 414.
	records := fixedRecords(10, 50)

	res, err := BuildPage(testRequest(0), records, 45, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 7, res.Displayed)
	assert.Equal(t, 7, res.Consumed)
	assert.Len(t, res.Items, res.Displayed)
	assert.True(t, res.HasMore)
	assert.Equal(t, 7, res.NextOffset)
}

func TestBuildPageNextOffsetFromActualNotNominal(t *testing.T) {
	// One fat record in the middle forces an early stop; the next offset
	// must point at the trimmed record, not at a nominal page boundary.
	records := fixedRecords(6, 50)
	records[3] = testRecord{id: 3, text: strings.Repeat("y", 300)}

	res, err := BuildPage(testRequest(0), records, 6, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	// 3 * 50 + 2 * 2 = 154; adding the 300-byte block would need 456 > 380.
	assert.Equal(t, 3, res.Displayed)
	assert.Equal(t, 3, res.NextOffset)
	assert.True(t, res.HasMore)

	// The deferred record opens the following page.
	next, err := BuildPage(testRequest(3), records[3:], 6, plainFormatter, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("y", 300), next.Items[0])
}

func TestBuildPageLastPage(t *testing.T) {
	records := fixedRecords(3, 50)

	res, err := BuildPage(testRequest(42), records, 45, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Displayed)
	assert.False(t, res.HasMore)
}

func TestBuildPageEmptyBatch(t *testing.T) {
	res, err := BuildPage(testRequest(0), nil, 0, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	assert.Zero(t, res.Displayed)
	assert.Empty(t, res.Items)
	assert.False(t, res.HasMore)
}

// ---------------------------------------------------------------------------
// BuildPage: forward progress
// ---------------------------------------------------------------------------

func TestBuildPageOversizedRecordTruncated(t *testing.T) {
	// A single 600-byte record with a 400-byte cap: the page still shows
	// exactly that record, cut to fit.
	records := []Record{testRecord{id: 1, text: strings.Repeat("z", 600)}}

	res, err := BuildPage(testRequest(0), records, 1, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, 1, res.Displayed)
	assert.LessOrEqual(t, len(res.Items[0]), 380)
	assert.True(t, strings.HasSuffix(res.Items[0], TruncationMarker))
	assert.False(t, res.HasMore)
}

func TestBuildPageOversizedRecordStopsPage(t *testing.T) {
	// The truncated record fills the page on its own; followers wait.
	records := []Record{
		testRecord{id: 1, text: strings.Repeat("z", 600)},
		testRecord{id: 2, text: "tiny"},
	}

	res, err := BuildPage(testRequest(0), records, 2, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Displayed)
	assert.True(t, res.HasMore)
	assert.Equal(t, 1, res.NextOffset)
}

func TestBuildPageProgressProperty(t *testing.T) {
	// Whatever the mix of sizes, a page is never empty while records
	// remain past the offset.
	sizes := []int{380, 1, 380, 500, 40, 40, 379, 2}
	records := make([]Record, len(sizes))
	for i, size := range sizes {
		records[i] = testRecord{id: int64(i), text: strings.Repeat("a", size)}
	}

	offset := 0
	for offset < len(records) {
		res, err := BuildPage(testRequest(offset), records[offset:], len(records), plainFormatter, zerolog.Nop())
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Displayed, 1, "empty page at offset %d", offset)
		require.Equal(t, res.Displayed, len(res.Items))
		if !res.HasMore {
			break
		}
		require.Greater(t, res.NextOffset, offset, "no forward progress at offset %d", offset)
		offset = res.NextOffset
	}
}

func TestBuildPageCoverageProperty(t *testing.T) {
	// Walking forward visits every record exactly once, in order.
	records := fixedRecords(45, 50)

	var seen []string
	offset := 0
	for {
		res, err := BuildPage(testRequest(offset), records[offset:], 45, plainFormatter, zerolog.Nop())
		require.NoError(t, err)
		seen = append(seen, res.Items...)
		if !res.HasMore {
			break
		}
		offset = res.NextOffset
	}

	require.Len(t, seen, 45)
	for i, text := range seen {
		assert.True(t, strings.HasPrefix(text, fmt.Sprintf("rec-%04d|", i)), "record %d out of order", i)
	}
}

// ---------------------------------------------------------------------------
// BuildPage: error paths
// ---------------------------------------------------------------------------

func TestBuildPageSkipsUnrenderableRecord(t *testing.T) {
	failing := FormatFunc(func(r Record) (Block, error) {
		if r.RecordID() == 1 {
			return Block{}, &FormatError{RecordID: 1, Err: errors.New("boom")}
		}
		return plainFormatter(r)
	})

	records := fixedRecords(3, 50)
	res, err := BuildPage(testRequest(0), records, 3, failing, zerolog.Nop())
	require.NoError(t, err)

	// Two rendered, but all three consumed so the bad record is never
	// re-read on the next page.
	assert.Equal(t, 2, res.Displayed)
	assert.Equal(t, 3, res.Consumed)
	assert.False(t, res.HasMore)
}

func TestBuildPageInvalidCap(t *testing.T) {
	tests := []struct {
		name    string
		cap     int
		reserve int
	}{
		{"reserve equals cap", 100, 100},
		{"reserve exceeds cap", 100, 150},
		{"zero cap", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{CapBytes: tt.cap, HeaderReserveBytes: tt.reserve}
			_, err := BuildPage(req, fixedRecords(1, 10), 1, plainFormatter, zerolog.Nop())
			assert.ErrorIs(t, err, ErrInvalidCap)
		})
	}
}

// ---------------------------------------------------------------------------
// BuildPage: determinism
// ---------------------------------------------------------------------------

func TestBuildPageDeterministic(t *testing.T) {
	records := fixedRecords(20, 50)

	first, err := BuildPage(testRequest(5), records[5:], 20, plainFormatter, zerolog.Nop())
	require.NoError(t, err)
	second, err := BuildPage(testRequest(5), records[5:], 20, plainFormatter, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// ---------------------------------------------------------------------------
// truncateBlock
// ---------------------------------------------------------------------------

func TestTruncateBlock(t *testing.T) {
	t.Run("within budget unchanged", func(t *testing.T) {
		b := Block{Text: "short", Size: 5}
		assert.Equal(t, b, truncateBlock(b, 10))
	})

	t.Run("budget smaller than marker", func(t *testing.T) {
		got := truncateBlock(Block{Text: "abcdef", Size: 6}, 2)
		assert.LessOrEqual(t, got.Size, 2)
		assert.Equal(t, len(got.Text), got.Size)
	})

	t.Run("cut lands on rune boundary", func(t *testing.T) {
		text := strings.Repeat("é", 100) // 2 bytes per rune
		got := truncateBlock(Block{Text: text, Size: len(text)}, 50)
		assert.True(t, strings.HasSuffix(got.Text, TruncationMarker))
		assert.LessOrEqual(t, got.Size, 50)
		assert.Equal(t, len(got.Text), got.Size)
		for _, r := range got.Text {
			assert.NotEqual(t, '�', r)
		}
	})
}
