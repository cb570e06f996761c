package pagination

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pagedFeed serves fixed-size pages from a backing slice and counts requests.
type pagedFeed struct {
	items    []int
	pageSize int
	offset   int
	requests int
}

func (f *pagedFeed) NextPage(ctx context.Context) (PageBatch[int], error) {
	f.requests++
	end := f.offset + f.pageSize
	if end > len(f.items) {
		end = len(f.items)
	}
	batch := PageBatch[int]{
		Items:   f.items[f.offset:end],
		HasMore: end < len(f.items),
	}
	f.offset = end
	return batch, nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestAccumulate_NonPositiveTargetRequestsNothing(t *testing.T) {
	for _, target := range []int{0, -1, -100} {
		feed := &pagedFeed{items: seq(10), pageSize: 3}
		got, err := Accumulate[int](context.Background(), feed, target, Pacing{})
		require.NoError(t, err)
		require.Empty(t, got)
		require.Zero(t, feed.requests, "target=%d must not touch the feed", target)
	}
}

func TestAccumulate_StopsAtExactPageCount(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		pageSize  int
		target    int
		wantPages int
	}{
		{"target on page boundary", 30, 10, 20, 2},
		{"target mid-page", 30, 10, 15, 2},
		{"single page suffices", 30, 10, 5, 1},
		{"target equals total", 30, 10, 30, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feed := &pagedFeed{items: seq(tc.total), pageSize: tc.pageSize}
			got, err := Accumulate[int](context.Background(), feed, tc.target, Pacing{})
			require.NoError(t, err)
			require.Len(t, got, tc.target)
			require.Equal(t, tc.wantPages, feed.requests)
			require.Equal(t, seq(tc.total)[:tc.target], got, "order must follow fetch order")
		})
	}
}

func TestAccumulate_SourceExhaustedBeforeTarget(t *testing.T) {
	feed := &pagedFeed{items: seq(7), pageSize: 3}
	got, err := Accumulate[int](context.Background(), feed, 50, Pacing{})
	require.NoError(t, err)
	require.Len(t, got, 7)
	require.Equal(t, 3, feed.requests)
}

func TestAccumulate_PageErrorPropagates(t *testing.T) {
	boom := errors.New("cursor expired")
	calls := 0
	feed := FeedFunc[int](func(ctx context.Context) (PageBatch[int], error) {
		calls++
		if calls == 2 {
			return PageBatch[int]{}, boom
		}
		return PageBatch[int]{Items: []int{1, 2}, HasMore: true}, nil
	})
	_, err := Accumulate[int](context.Background(), feed, 10, Pacing{})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls, "a failed page must not be retried")
}

func TestAccumulate_PacingSleepCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	feed := FeedFunc[int](func(ctx context.Context) (PageBatch[int], error) {
		cancel() // cancel while the accumulator is about to pace
		return PageBatch[int]{Items: []int{1}, HasMore: true}, nil
	})
	start := time.Now()
	_, err := Accumulate[int](ctx, feed, 10, Pacing{Min: 5 * time.Second, Max: 10 * time.Second})
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), time.Second, "cancellation must interrupt the pacing sleep")
}

func TestPacingDelayWithinBounds(t *testing.T) {
	p := Pacing{Min: 100 * time.Millisecond, Max: 300 * time.Millisecond}
	for i := 0; i < 100; i++ {
		d := p.delay()
		require.GreaterOrEqual(t, d, p.Min)
		require.Less(t, d, p.Max)
	}
	// Degenerate bounds collapse to Min.
	require.Equal(t, time.Second, Pacing{Min: time.Second, Max: time.Second}.delay())
}
