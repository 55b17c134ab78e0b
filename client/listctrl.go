package client

import (
	"context"
	"sync"
	"time"

	"github.com/silsila-idreesia/portal/listing"
)

// DefaultDebounce is how long search input is allowed to settle before a
// fetch is issued.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher loads one page of records for the given list parameters.
type Fetcher[T any] func(ctx context.Context, p listing.Params) (listing.Envelope[T], error)

// Scheduler runs fn after the delay and returns a cancel function. The
// default implementation uses time.AfterFunc; tests inject their own to
// drive debouncing deterministically.
type Scheduler func(delay time.Duration, fn func()) (cancel func())

func timerScheduler(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)

	return func() { timer.Stop() }
}

// ListConfig configures a ListController.
type ListConfig[T any] struct {
	// Fetch loads pages. Required.
	Fetch Fetcher[T]

	// Debounce is the search settle delay. Defaults to DefaultDebounce.
	Debounce time.Duration

	// Schedule overrides the debounce timer implementation.
	Schedule Scheduler

	// DefaultSort is the initial sort column, ascending.
	DefaultSort string

	// Cascades maps a parent filter name to the dependent filter names
	// cleared whenever the parent changes, e.g. zone_id -> mehfil ids.
	Cascades map[string][]string
}

// ListController holds the interactive state of one paginated list screen:
// page, page size, sort, debounced search and entity filters. Every state
// change issues a fetch; responses superseded by a newer change are
// discarded so a slow request can never overwrite fresher data.
type ListController[T any] struct {
	mu sync.Mutex

	fetch    Fetcher[T]
	debounce time.Duration
	schedule Scheduler
	cascades map[string][]string

	cancelPending func()

	params     listing.Params
	generation uint64

	items  []T
	meta   listing.Meta
	err    error
	stale  bool
	loaded bool
}

// NewListController creates a controller in its initial state: page 1,
// default page size, no search and no filters. No fetch is issued until
// Refresh or a state change.
func NewListController[T any](cfg ListConfig[T]) *ListController[T] {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	if cfg.Schedule == nil {
		cfg.Schedule = timerScheduler
	}

	return &ListController[T]{
		fetch:    cfg.Fetch,
		debounce: cfg.Debounce,
		schedule: cfg.Schedule,
		cascades: cfg.Cascades,
		params: listing.Params{
			Page:    1,
			PerPage: listing.DefaultPerPage,
			Sort:    cfg.DefaultSort,
			Dir:     listing.Ascending,
			Filters: map[string]string{},
		},
	}
}

// Items returns the records of the last successful fetch.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.items
}

// Meta returns the pagination metadata of the last successful fetch.
func (c *ListController[T]) Meta() listing.Meta {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.meta
}

// Err returns the error of the last fetch, or nil after a success. An
// empty result set is not an error; the two states stay distinguishable.
func (c *ListController[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

// Stale reports whether Items holds data from before the last failed
// fetch. Callers label such data instead of silently presenting it.
func (c *ListController[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stale
}

// Params returns a copy of the current list parameters.
func (c *ListController[T]) Params() listing.Params {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cloneParams(c.params)
}

// Refresh issues a fetch with the current parameters.
func (c *ListController[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.mu.Unlock()

	c.issue(ctx)
}

// Retry re-issues the last query after a failure.
func (c *ListController[T]) Retry(ctx context.Context) {
	c.Refresh(ctx)
}

// SetPage moves to the given page and fetches it.
func (c *ListController[T]) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.cancelPendingLocked()
	c.params.Page = page
	c.mu.Unlock()

	c.issue(ctx)
}

// SetPageSize changes the page size, restarting from the first page.
// Sizes outside the allowed set are clamped.
func (c *ListController[T]) SetPageSize(ctx context.Context, size int) {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.params.PerPage = listing.ClampPageSize(size)
	c.params.Page = 1
	c.mu.Unlock()

	c.issue(ctx)
}

// SetSort changes the sort column and direction, restarting from the
// first page.
func (c *ListController[T]) SetSort(ctx context.Context, field string, dir listing.SortDirection) {
	if dir != listing.Descending {
		dir = listing.Ascending
	}

	c.mu.Lock()
	c.cancelPendingLocked()
	c.params.Sort = field
	c.params.Dir = dir
	c.params.Page = 1
	c.mu.Unlock()

	c.issue(ctx)
}

// SetFilter changes one filter, restarting from the first page. Filters
// depending on this one through a cascade are cleared, transitively. An
// empty value removes the filter.
func (c *ListController[T]) SetFilter(ctx context.Context, name, value string) {
	c.mu.Lock()
	c.cancelPendingLocked()

	if value == "" {
		delete(c.params.Filters, name)
	} else {
		c.params.Filters[name] = value
	}

	c.clearDependentsLocked(name)
	c.params.Page = 1
	c.mu.Unlock()

	c.issue(ctx)
}

// Filter returns the current value of a filter.
func (c *ListController[T]) Filter(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.params.Filters[name]
}

// SetSearch changes the search text, restarting from the first page. The
// fetch is debounced, so rapid successive calls collapse into a single
// request for the final text.
func (c *ListController[T]) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.params.Search = text
	c.params.Page = 1

	c.cancelPending = c.schedule(c.debounce, func() {
		c.mu.Lock()
		c.cancelPending = nil
		c.mu.Unlock()

		c.issue(ctx)
	})
	c.mu.Unlock()
}

// issue runs one fetch and applies the result unless a newer state change
// has superseded it in the meantime.
func (c *ListController[T]) issue(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	params := cloneParams(c.params)
	c.mu.Unlock()

	env, err := c.fetch(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return
	}

	if err != nil {
		c.err = err
		c.stale = c.loaded

		return
	}

	c.items = env.Data
	c.meta = env.Meta
	c.err = nil
	c.stale = false
	c.loaded = true
}

// cancelPendingLocked drops a not yet fired debounced fetch. Callers hold
// the mutex.
func (c *ListController[T]) cancelPendingLocked() {
	if c.cancelPending != nil {
		c.cancelPending()
		c.cancelPending = nil
	}
}

// clearDependentsLocked removes the filters cascading from name,
// transitively. Callers hold the mutex.
func (c *ListController[T]) clearDependentsLocked(name string) {
	for _, dependent := range c.cascades[name] {
		if _, ok := c.params.Filters[dependent]; ok {
			delete(c.params.Filters, dependent)
			c.clearDependentsLocked(dependent)
		}
	}
}

func cloneParams(p listing.Params) listing.Params {
	filters := make(map[string]string, len(p.Filters))
	for name, value := range p.Filters {
		filters[name] = value
	}

	p.Filters = filters

	return p
}
