// Package explorer owns the view state of an explore session and turns filter
// changes into debounced refetches.
package explorer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

// Fetcher runs one fetch cycle. usecase.Aggregator satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, f domain.Filter) ([]domain.Repository, error)
}

// State is what the presentation layer renders.
type State struct {
	Filter       domain.Filter       `json:"filter"`
	Repositories []domain.Repository `json:"repositories"`
	Error        string              `json:"error,omitempty"`
	IsLoading    bool                `json:"is_loading"`
}

// Controller holds State for one session. Every filter change schedules a fetch after
// the settle delay, replacing any fetch still waiting to be scheduled. Fetches already
// in flight are not cancelled; each carries a generation number and only the latest
// generation may update State.
type Controller struct {
	ctx      context.Context
	fetcher  Fetcher
	delay    time.Duration
	logger   *log.Logger
	onChange func(State)

	mu         sync.Mutex
	state      State
	timer      *time.Timer
	generation uint64
	seq        uint64

	deliverMu  sync.Mutex
	pending    *State
	queuedSeq  uint64
	delivering bool
}

// NewController creates a controller starting from filter. Scheduled fetches run with ctx.
// onChange, if non-nil, receives a snapshot whenever State changes; it runs outside
// the controller's lock and may be called from timer goroutines. Calls never overlap
// and never go back in time: a snapshot older than one already handed over is dropped,
// and snapshots produced while onChange is busy collapse into the newest one.
func NewController(ctx context.Context, fetcher Fetcher, filter domain.Filter, delay time.Duration, logger *log.Logger, onChange func(State)) *Controller {
	return &Controller{
		ctx:      ctx,
		fetcher:  fetcher,
		delay:    delay,
		logger:   logger,
		onChange: onChange,
		state:    State{Filter: filter},
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetFilter records f and (re)schedules a fetch after the settle delay.
func (c *Controller) SetFilter(f domain.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = f
	if c.timer != nil {
		c.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		if c.timer != t {
			// Superseded by a later SetFilter or a manual Refresh.
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.mu.Unlock()
		c.Refresh()
	})
	c.timer = t
}

// Update applies fn to a copy of the current filter and passes the result to SetFilter.
func (c *Controller) Update(fn func(f *domain.Filter)) {
	f := c.Snapshot().Filter
	fn(&f)
	c.SetFilter(f)
}

// Refresh fetches the current filter immediately and blocks until the fetch settles.
// A fetch still waiting for the settle delay is cancelled.
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	gen := c.generation
	filter := c.state.Filter
	c.state.IsLoading = true
	c.state.Error = ""
	c.seq++
	seq, snapshot := c.seq, c.state
	c.mu.Unlock()
	c.notify(seq, snapshot)

	repos, err := c.fetcher.Fetch(c.ctx, filter)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Printf("Explorer: discarding stale result of fetch #%d (latest is #%d)\n", gen, c.generation)
		return
	}
	if err != nil {
		c.logger.Printf("Error fetching repositories: %v\n", err)
		c.state.Repositories = nil
		c.state.Error = err.Error()
	} else {
		c.state.Repositories = repos
		c.state.Error = ""
	}
	c.state.IsLoading = false
	c.seq++
	seq, snapshot = c.seq, c.state
	c.mu.Unlock()
	c.notify(seq, snapshot)
}

// Close stops any scheduled fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// notify hands snapshot seq to onChange. Whichever caller finds no delivery in
// progress becomes the deliverer and keeps going until nothing newer is pending.
func (c *Controller) notify(seq uint64, s State) {
	if c.onChange == nil {
		return
	}
	c.deliverMu.Lock()
	if seq <= c.queuedSeq {
		c.deliverMu.Unlock()
		return
	}
	c.queuedSeq = seq
	c.pending = &s
	if c.delivering {
		c.deliverMu.Unlock()
		return
	}
	c.delivering = true
	for c.pending != nil {
		next := *c.pending
		c.pending = nil
		c.deliverMu.Unlock()
		c.onChange(next)
		c.deliverMu.Lock()
	}
	c.delivering = false
	c.deliverMu.Unlock()
}
