package pager

// Record is one item in a browsable collection. The pager never inspects a
// record beyond its identity; rendering is delegated entirely to a Formatter.
// Records are immutable for the duration of a page build.
type Record interface {
	// RecordID returns the record's stable identity within its collection.
	RecordID() int64
}

// Filter is an opaque token selecting which subset of records a session
// browses and in what order. The Entity Source interprets it; the pager only
// compares filters for equality. Two sessions with different filters never
// share pagination state.
type Filter string

// FilterAll selects the full collection in its natural order.
const FilterAll Filter = ""
