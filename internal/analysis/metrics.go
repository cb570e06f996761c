package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/leadscope/mcpgram/internal/instagram"
)

const endOfDayOffset = 86399 * time.Second

// EngagementRate computes average interactions per post as a percentage of
// follower count, rounded to two decimals. Zero followers short-circuits to 0
// so the result is never NaN or Inf.
func EngagementRate(totalLikes, totalComments, postCount, followers int) float64 {
	if followers <= 0 || postCount <= 0 {
		return 0
	}
	avgLikes := float64(totalLikes) / float64(postCount)
	avgComments := float64(totalComments) / float64(postCount)
	return round2((avgLikes + avgComments) / float64(followers) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// DateRange bounds a report period. Zero bounds impose no constraint on that
// side. The end bound is inclusive of the whole end day.
type DateRange struct {
	start time.Time
	end   time.Time
}

// ParseDateRange parses optional YYYY-MM-DD bounds in UTC.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var r DateRange
	if startDate != "" {
		t, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
		if err != nil {
			return r, err
		}
		r.start = t
	}
	if endDate != "" {
		t, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
		if err != nil {
			return r, err
		}
		r.end = t.Add(endOfDayOffset)
	}
	return r, nil
}

// Contains reports whether ts falls inside the range, end-of-day inclusive.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.start.IsZero() && ts.Before(r.start) {
		return false
	}
	if !r.end.IsZero() && ts.After(r.end) {
		return false
	}
	return true
}

// Bounded reports whether either side is constrained.
func (r DateRange) Bounded() bool {
	return !r.start.IsZero() || !r.end.IsZero()
}

// FilterByDate keeps posts whose timestamp falls inside the range,
// preserving fetch order.
func FilterByDate(posts []instagram.Post, r DateRange) []instagram.Post {
	if !r.Bounded() {
		return posts
	}
	out := make([]instagram.Post, 0, len(posts))
	for _, p := range posts {
		if r.Contains(p.TakenAt) {
			out = append(out, p)
		}
	}
	return out
}

// TopPostsByLikes returns the n most-liked posts. The sort is stable so ties
// keep their original fetch order.
func TopPostsByLikes(posts []instagram.Post, n int) []instagram.Post {
	sorted := make([]instagram.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LikeCount > sorted[j].LikeCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
