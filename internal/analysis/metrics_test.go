package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadscope/mcpgram/internal/instagram"
)

func TestEngagementRate(t *testing.T) {
	// 10 posts, 5000 likes, 500 comments, 10000 followers:
	// (500 + 50) / 10000 * 100 = 5.5
	require.Equal(t, 5.5, EngagementRate(5000, 500, 10, 10000))
	require.Equal(t, 0.01, EngagementRate(1, 0, 1, 10000), "rounds to two decimals")
}

func TestEngagementRate_ZeroFollowersNeverNaN(t *testing.T) {
	got := EngagementRate(100, 50, 10, 0)
	require.Equal(t, 0.0, got)
	require.False(t, got != got, "must not be NaN")
	require.Equal(t, 0.0, EngagementRate(100, 50, 0, 1000), "zero posts also short-circuits")
}

func TestDateRange_EndOfDayInclusive(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-03-31")
	require.NoError(t, err)

	lastSecond := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	require.True(t, r.Contains(lastSecond), "23:59:59 of the end date is included")
	require.False(t, r.Contains(lastSecond.Add(time.Second)), "one second later is excluded")
	require.True(t, r.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, r.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestDateRange_AbsentBounds(t *testing.T) {
	open, err := ParseDateRange("", "")
	require.NoError(t, err)
	require.False(t, open.Bounded())
	require.True(t, open.Contains(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))

	onlyStart, err := ParseDateRange("2024-06-01", "")
	require.NoError(t, err)
	require.True(t, onlyStart.Contains(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, onlyStart.Contains(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRange_RejectsBadFormat(t *testing.T) {
	_, err := ParseDateRange("01/02/2024", "")
	require.Error(t, err)
}

func TestTopPostsByLikes_StableTies(t *testing.T) {
	now := time.Now()
	posts := []instagram.Post{
		post("1", 10, 0, now),
		post("2", 50, 0, now),
		post("3", 50, 0, now),
		post("4", 99, 0, now),
		post("5", 50, 0, now),
	}
	top := TopPostsByLikes(posts, 3)
	require.Len(t, top, 3)
	require.Equal(t, "4", top[0].PK)
	// Ties break by original fetch order.
	require.Equal(t, "2", top[1].PK)
	require.Equal(t, "3", top[2].PK)

	// Input order untouched.
	require.Equal(t, "1", posts[0].PK)
}
