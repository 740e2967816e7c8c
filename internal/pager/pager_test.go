package pager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n, offset int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = offset + i
	}
	return out
}

// fixedPages serves a table of page -> record count.
func fixedPages(counts map[int]int) Fetcher[int] {
	return func(_ context.Context, page, pageSize int) ([]int, error) {
		return makeItems(counts[page], page*pageSize), nil
	}
}

func TestHasMoreHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		returned int
		pageSize int
		want     bool
	}{
		{"short page", 7, 20, false},
		{"empty page", 0, 20, false},
		{"exactly full page even if nothing follows", 20, 20, true},
		{"overfull page", 25, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("users", tt.pageSize, fixedPages(map[int]int{0: tt.returned}))
			st, err := c.LoadNow(context.Background(), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.HasMore)
			assert.Len(t, st.Items, tt.returned)
		})
	}
}

func TestExactBoundaryResolvesOnEmptyNextPage(t *testing.T) {
	c := New("users", 20, fixedPages(map[int]int{0: 20}))
	ctx := context.Background()

	st, err := c.LoadNow(ctx, 0)
	require.NoError(t, err)
	require.True(t, st.HasMore)

	st, err = c.LoadNow(ctx, 1)
	require.NoError(t, err)
	assert.False(t, st.HasMore)
	assert.Empty(t, st.Items)
	assert.Equal(t, 1, st.PageIndex)
}

func TestLastIssuedLoadWins(t *testing.T) {
	fetch := fixedPages(map[int]int{0: 20, 1: 3})
	c := New("teams", 20, fetch)
	ctx := context.Background()

	t0 := c.Begin(0)
	t1 := c.Begin(1)

	r1 := Run(ctx, fetch, t1)
	r0 := Run(ctx, fetch, t0)

	// load(1) resolves first, load(0) arrives late.
	require.NoError(t, c.Apply(r1))
	assert.ErrorIs(t, c.Apply(r0), ErrStale)

	st := c.State()
	assert.Equal(t, 1, st.PageIndex)
	assert.Equal(t, []int{20, 21, 22}, st.Items)
	assert.False(t, st.HasMore)
	assert.False(t, c.Loading())
}

func TestEarlierArrivalIsDiscardedToo(t *testing.T) {
	fetch := fixedPages(map[int]int{0: 20, 1: 3})
	c := New("teams", 20, fetch)
	ctx := context.Background()

	t0 := c.Begin(0)
	t1 := c.Begin(1)

	assert.ErrorIs(t, c.Apply(Run(ctx, fetch, t0)), ErrStale)
	assert.True(t, c.Loading())
	require.NoError(t, c.Apply(Run(ctx, fetch, t1)))
	assert.Equal(t, 1, c.State().PageIndex)
}

func TestResultFromOtherViewIsIgnored(t *testing.T) {
	fetch := fixedPages(map[int]int{0: 1})
	users := New("users", 20, fetch)
	teams := New("teams", 20, fetch)

	tu := users.Begin(0)
	teams.Begin(0)

	assert.ErrorIs(t, teams.Apply(Run(context.Background(), fetch, tu)), ErrStale)
}

func TestFailedLoadKeepsPreviousItems(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	c := New("users", 2, func(_ context.Context, page, size int) ([]int, error) {
		calls++
		if calls > 1 {
			return nil, boom
		}
		return []int{1, 2}, nil
	})
	ctx := context.Background()

	_, err := c.LoadNow(ctx, 0)
	require.NoError(t, err)

	st, err := c.LoadNow(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Err(), boom)
	assert.Equal(t, 0, st.PageIndex)
	assert.Equal(t, []int{1, 2}, st.Items)
}

func TestLoadCommandProducesResult(t *testing.T) {
	c := New("users", 20, fixedPages(map[int]int{2: 4}))
	cmd := c.Load(context.Background(), 2)
	require.NotNil(t, cmd)
	assert.True(t, c.Loading())

	msg := cmd()
	res, ok := msg.(Result[int])
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "users", res.View)
	assert.Equal(t, 2, res.Page)
	require.NoError(t, c.Apply(res))
	assert.Len(t, c.State().Items, 4)
}

func TestNextPrevAndPagination(t *testing.T) {
	c := New("users", 2, fixedPages(map[int]int{0: 2, 1: 1}))
	ctx := context.Background()

	assert.Nil(t, c.Prev(ctx))
	_, err := c.LoadNow(ctx, 0)
	require.NoError(t, err)
	assert.True(t, c.ShowPagination())
	assert.Nil(t, c.Prev(ctx))

	next := c.Next(ctx)
	require.NotNil(t, next)
	require.NoError(t, c.Apply(next().(Result[int])))
	assert.Equal(t, 1, c.State().PageIndex)
	assert.Nil(t, c.Next(ctx))
	assert.True(t, c.ShowPagination())
	assert.NotNil(t, c.Prev(ctx))
}

func TestLonePageHidesPagination(t *testing.T) {
	c := New("users", 20, fixedPages(map[int]int{0: 5}))
	_, err := c.LoadNow(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, c.ShowPagination())
}

func TestDefaults(t *testing.T) {
	c := New[int]("x", 0, nil)
	assert.Equal(t, DefaultPageSize, c.State().PageSize)
	assert.Equal(t, 0, c.Begin(-3).Page)
}
