package pagination

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// PageBatch is one page of items from a cursor feed plus a has-more flag.
// Cursor state lives inside the feed; batches are transient and never persisted.
type PageBatch[T any] struct {
	Items   []T
	HasMore bool
}

// CursorFeed is a paginated remote data source. Implementations track their
// own opaque cursor between calls, so NextPage must be called sequentially.
type CursorFeed[T any] interface {
	NextPage(ctx context.Context) (PageBatch[T], error)
}

// FeedFunc adapts a function to the CursorFeed interface.
type FeedFunc[T any] func(ctx context.Context) (PageBatch[T], error)

// NextPage implements CursorFeed.
func (f FeedFunc[T]) NextPage(ctx context.Context) (PageBatch[T], error) {
	return f(ctx)
}

// Pacing bounds the randomized inter-page delay used to avoid request bursts.
type Pacing struct {
	Min time.Duration
	Max time.Duration
}

// delay draws a uniform duration from [Min, Max].
func (p Pacing) delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + rand.N(p.Max-p.Min)
}

// Accumulate follows a cursor feed until target items have been collected or
// the source is exhausted, sleeping a randomized pacing interval between pages.
// The result is truncated to exactly target items. target <= 0 returns an
// empty slice without requesting any page. Page errors are not retried here;
// they propagate to the caller for classification.
func Accumulate[T any](ctx context.Context, feed CursorFeed[T], target int, pacing Pacing) ([]T, error) {
	if target <= 0 {
		return nil, nil
	}

	var items []T
	for {
		batch, err := feed.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("pagination: page %w", err)
		}
		items = append(items, batch.Items...)
		if len(items) >= target || !batch.HasMore {
			break
		}
		// Pace before the next page only; the final page returns immediately.
		if err := sleep(ctx, pacing.delay()); err != nil {
			return nil, err
		}
	}

	if len(items) > target {
		items = items[:target]
	}
	return items, nil
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
