package nav

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/rosterbot/internal/pager"
	"github.com/rshade/rosterbot/internal/source"
)

// State is the coordinator's lifecycle state.
type State int

const (
	// StateIdle means no listing is active.
	StateIdle State = iota
	// StateListing means the session has a current offset and page.
	StateListing
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListing:
		return "listing"
	default:
		return "unknown"
	}
}

// Limits carries the transport-derived page budget. CapBytes is the hard
// message size limit; HeaderReserveBytes is held back for the envelope;
// MaxPerPage bounds the fetch look-ahead so a page build never pulls the
// whole collection; FetchTimeout bounds each entity source call.
type Limits struct {
	CapBytes           int
	HeaderReserveBytes int
	MaxPerPage         int
	FetchTimeout       time.Duration
}

// Default limit values, sized for a 4096-byte chat transport message.
const (
	DefaultCapBytes           = 4096
	DefaultHeaderReserveBytes = 64
	DefaultMaxPerPage         = 30
	DefaultFetchTimeout       = 5 * time.Second
)

// DefaultLimits returns the default page budget.
func DefaultLimits() Limits {
	return Limits{
		CapBytes:           DefaultCapBytes,
		HeaderReserveBytes: DefaultHeaderReserveBytes,
		MaxPerPage:         DefaultMaxPerPage,
		FetchTimeout:       DefaultFetchTimeout,
	}
}

// Page is what the presentation layer receives for one render: the final
// message text and which navigation affordances apply.
type Page struct {
	Text    string
	HasPrev bool
	HasNext bool
}

// Coordinator drives page building across forward/backward/filter-change
// requests for one browsing session and maintains the offset history that
// makes backward navigation an exact replay.
//
// A coordinator must be invoked strictly sequentially; the hosting layer
// serializes events per session (the Manager enforces this as a backstop).
// Given that, no internal locking is needed here.
type Coordinator struct {
	src    source.Source
	fmtr   pager.Formatter
	env    pager.Envelope
	limits Limits
	logger zerolog.Logger

	state    State
	filter   pager.Filter
	offset   int
	history  []int
	last     *pager.Result
	lastPage Page
}

// position is a snapshot of the navigation state, taken before a move so a
// failed render can be rolled back wholesale. The clamp loop may consume
// history entries before the failure, so restoring only the entry that the
// move pushed or popped is not enough.
type position struct {
	offset  int
	history []int
}

func (c *Coordinator) snapshot() position {
	return position{offset: c.offset, history: append([]int(nil), c.history...)}
}

func (c *Coordinator) restore(p position) {
	c.offset = p.offset
	c.history = p.history
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator(src source.Source, f pager.Formatter, env pager.Envelope, limits Limits, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		src:    src,
		fmtr:   f,
		env:    env,
		limits: limits,
		logger: logger.With().Str("component", "nav").Logger(),
	}
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State {
	return c.state
}

// Start begins a listing at offset 0 for filter, discarding any previous
// history.
func (c *Coordinator) Start(ctx context.Context, filter pager.Filter) (Page, error) {
	c.filter = filter
	c.offset = 0
	c.history = c.history[:0]
	c.last = nil
	c.lastPage = Page{}
	c.state = StateListing
	return c.render(ctx)
}

// Next advances to the page after the current one. At the end of the
// collection it is a no-op: the filtered total is re-checked with a
// metadata-only fetch and the current page is served again, rebuilt only if
// the collection changed underneath. Next never walks past the last record.
func (c *Coordinator) Next(ctx context.Context) (Page, error) {
	if c.state != StateListing {
		return Page{}, pager.ErrNotListing
	}
	if c.last == nil {
		return c.render(ctx)
	}
	if !c.last.HasMore {
		return c.refresh(ctx)
	}
	saved := c.snapshot()
	c.history = append(c.history, c.offset)
	c.offset = c.last.NextOffset
	page, err := c.render(ctx)
	if err != nil {
		// Roll back to the pre-move position so a retry resumes cleanly.
		c.restore(saved)
		return Page{}, err
	}
	return page, nil
}

// Prev replays the most recently recorded offset. Backward navigation never
// recomputes how many records "fit backward" — with variable block sizes
// that is ambiguous — it pops the history stack instead. With an empty
// history it serves the current (first) page again.
func (c *Coordinator) Prev(ctx context.Context) (Page, error) {
	if c.state != StateListing {
		return Page{}, pager.ErrNotListing
	}
	if len(c.history) == 0 {
		return c.refresh(ctx)
	}
	saved := c.snapshot()
	c.offset = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	page, err := c.render(ctx)
	if err != nil {
		c.restore(saved)
		return Page{}, err
	}
	return page, nil
}

// ChangeFilter restarts the listing under a new filter. History never
// survives a filter change: recorded offsets are meaningless in a different
// total order.
func (c *Coordinator) ChangeFilter(ctx context.Context, filter pager.Filter) (Page, error) {
	return c.Start(ctx, filter)
}

// End releases the session's listing state.
func (c *Coordinator) End() {
	c.state = StateIdle
	c.filter = pager.FilterAll
	c.offset = 0
	c.history = nil
	c.last = nil
	c.lastPage = Page{}
}

// refresh serves the current page again without moving. The filtered total
// is re-checked with a metadata-only fetch first; when it is unchanged the
// page rendered last is returned as-is, otherwise the page is rebuilt so
// concurrent inserts or deletes become visible.
func (c *Coordinator) refresh(ctx context.Context) (Page, error) {
	if c.last == nil {
		return c.render(ctx)
	}
	total, err := c.fetchTotal(ctx)
	if err != nil {
		return Page{}, err
	}
	if total == c.last.Total {
		return c.lastPage, nil
	}
	return c.render(ctx)
}

// render fetches a batch at the current offset, builds the page, and wraps
// it. On a source failure the offset is left untouched so the same request
// can simply be retried. If the collection shrank underneath the session it
// re-anchors to the nearest recorded offset that is still in range.
func (c *Coordinator) render(ctx context.Context) (Page, error) {
	res, err := c.fetchAndBuild(ctx)
	if err != nil {
		return Page{}, err
	}

	// Concurrent shrinkage: the current offset fell off the end of the
	// collection. Replay history back to a valid anchor instead of
	// surfacing an error.
	for res.Total > 0 && c.offset >= res.Total {
		c.logger.Debug().
			Int("offset", c.offset).
			Int("total", res.Total).
			Msg("offset past end of collection, re-anchoring")
		if len(c.history) > 0 {
			c.offset = c.history[len(c.history)-1]
			c.history = c.history[:len(c.history)-1]
		} else if c.offset > 0 {
			c.offset = 0
		} else {
			break
		}
		res, err = c.fetchAndBuild(ctx)
		if err != nil {
			return Page{}, err
		}
	}

	c.last = &res
	c.lastPage = Page{
		Text:    c.env.Render(res),
		HasPrev: len(c.history) > 0,
		HasNext: res.HasMore,
	}
	return c.lastPage, nil
}

// fetchTotal performs one bounded metadata-only fetch for the session's
// filter. Routed through a count cache in the default stack.
func (c *Coordinator) fetchTotal(ctx context.Context) (int, error) {
	fetchCtx := ctx
	if c.limits.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.limits.FetchTimeout)
		defer cancel()
	}

	_, total, err := c.src.Fetch(fetchCtx, c.filter, c.offset, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", pager.ErrSourceUnavailable, err)
	}
	return total, nil
}

// fetchAndBuild performs one bounded fetch and page build at the current
// offset.
func (c *Coordinator) fetchAndBuild(ctx context.Context) (pager.Result, error) {
	fetchCtx := ctx
	if c.limits.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.limits.FetchTimeout)
		defer cancel()
	}

	batch, total, err := c.src.Fetch(fetchCtx, c.filter, c.offset, c.limits.MaxPerPage)
	if err != nil {
		// Timeouts and transport failures alike surface as a retryable
		// source outage; the offset is untouched by the caller.
		return pager.Result{}, fmt.Errorf("%w: %v", pager.ErrSourceUnavailable, err)
	}

	req := pager.Request{
		Filter:             c.filter,
		Offset:             c.offset,
		CapBytes:           c.limits.CapBytes,
		HeaderReserveBytes: c.limits.HeaderReserveBytes,
	}
	return pager.BuildPage(req, batch, total, c.fmtr, c.logger)
}
