// Package pager drives paginated list views: it fetches one page at a time,
// infers whether another page exists, and makes sure the view always shows
// the page that was asked for last, whatever order responses arrive in.
package pager

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultPageSize matches the backend's default page length.
const DefaultPageSize = 20

// ErrStale is returned by Apply for a result that was overtaken by a later
// load.
var ErrStale = errors.New("pager: stale result discarded")

// Fetcher loads one page of records.
type Fetcher[T any] func(ctx context.Context, page, pageSize int) ([]T, error)

// PageState is what the view renders.
type PageState[T any] struct {
	PageIndex int
	PageSize  int
	Items     []T
	// HasMore is inferred from a full page: when the final page holds
	// exactly PageSize records it stays true until the next (empty) page
	// has been fetched.
	HasMore bool
}

// Ticket identifies one issued load.
type Ticket struct {
	View     string
	Seq      uint64
	Page     int
	PageSize int
}

// Result is delivered when a load completes. It doubles as the Bubble Tea
// message produced by Controller.Load.
type Result[T any] struct {
	Ticket
	Items []T
	Err   error
}

// Controller holds the state of one paginated view. It is not safe for
// concurrent use; call it from the Update loop only. Fetching itself runs
// elsewhere and never touches the controller.
type Controller[T any] struct {
	view    string
	fetch   Fetcher[T]
	state   PageState[T]
	issued  uint64
	loading bool
	err     error
}

// New creates a controller for the named view. A non-positive pageSize uses
// DefaultPageSize.
func New[T any](view string, pageSize int, fetch Fetcher[T]) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		view:  view,
		fetch: fetch,
		state: PageState[T]{PageSize: pageSize},
	}
}

// View returns the name the controller was created with.
func (c *Controller[T]) View() string { return c.view }

// State returns the last applied page.
func (c *Controller[T]) State() PageState[T] { return c.state }

// Loading reports whether the most recent load is still in flight.
func (c *Controller[T]) Loading() bool { return c.loading }

// Err returns the error of the most recent applied load, if any.
func (c *Controller[T]) Err() error { return c.err }

// Begin issues a new load of page and returns its ticket. Every earlier
// ticket becomes stale.
func (c *Controller[T]) Begin(page int) Ticket {
	if page < 0 {
		page = 0
	}
	c.issued++
	c.loading = true
	return Ticket{View: c.view, Seq: c.issued, Page: page, PageSize: c.state.PageSize}
}

// Run performs the fetch for t. It does not read or write controller state,
// so it is safe to call from any goroutine.
func Run[T any](ctx context.Context, fetch Fetcher[T], t Ticket) Result[T] {
	items, err := fetch(ctx, t.Page, t.PageSize)
	return Result[T]{Ticket: t, Items: items, Err: err}
}

// Apply folds a completed result into the state. Results older than the
// latest issued ticket are discarded with ErrStale. A failed load keeps the
// previously shown items and returns the load error.
func (c *Controller[T]) Apply(r Result[T]) error {
	if r.View != c.view || r.Seq != c.issued {
		return ErrStale
	}
	c.loading = false
	if r.Err != nil {
		c.err = r.Err
		return r.Err
	}
	c.err = nil
	c.state = PageState[T]{
		PageIndex: r.Page,
		PageSize:  r.PageSize,
		Items:     r.Items,
		HasMore:   len(r.Items) >= r.PageSize,
	}
	return nil
}

// Load issues a load of page and returns the command that performs it. The
// command's message is a Result[T] to be handed back to Apply.
func (c *Controller[T]) Load(ctx context.Context, page int) tea.Cmd {
	t := c.Begin(page)
	fetch := c.fetch
	return func() tea.Msg {
		return Run(ctx, fetch, t)
	}
}

// LoadNow loads page synchronously and returns the resulting state.
func (c *Controller[T]) LoadNow(ctx context.Context, page int) (PageState[T], error) {
	t := c.Begin(page)
	if err := c.Apply(Run(ctx, c.fetch, t)); err != nil {
		return c.state, err
	}
	return c.state, nil
}

// Reload re-fetches the page currently shown.
func (c *Controller[T]) Reload(ctx context.Context) tea.Cmd {
	return c.Load(ctx, c.state.PageIndex)
}

// Next returns the command for the following page, or nil when the
// heuristic says there is none.
func (c *Controller[T]) Next(ctx context.Context) tea.Cmd {
	if !c.state.HasMore {
		return nil
	}
	return c.Load(ctx, c.state.PageIndex+1)
}

// Prev returns the command for the preceding page, or nil on page 0.
func (c *Controller[T]) Prev(ctx context.Context) tea.Cmd {
	if c.state.PageIndex == 0 {
		return nil
	}
	return c.Load(ctx, c.state.PageIndex-1)
}

// ShowPagination reports whether page controls are worth drawing: not on a
// lone first page.
func (c *Controller[T]) ShowPagination() bool {
	return c.state.PageIndex > 0 || c.state.HasMore
}
