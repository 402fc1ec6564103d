package source

import (
	"context"

	"github.com/rshade/rosterbot/internal/pager"
)

// Source is the entity source consumed by the navigation layer. It is
// expected to apply the filter and its ordering server-side.
//
// Fetch returns at most limit records starting at offset in the filter's
// total order, together with the size of the filtered set at fetch time.
// A limit of zero is a metadata-only call: no records, count only.
// Implementations must honor ctx cancellation and deadlines.
type Source interface {
	Fetch(ctx context.Context, filter pager.Filter, offset, limit int) ([]pager.Record, int, error)
}
