package analysis

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/leadscope/mcpgram/internal/instagram"
)

func reportClient() *fakeClient {
	return &fakeClient{
		profiles: map[string]instagram.UserProfile{
			"55": {
				PK: "55", Username: "brand", FullName: "Brand Co",
				FollowerCount: 10000, FollowingCount: 120, MediaCount: 300, IsVerified: true,
			},
		},
		posts: []instagram.Post{
			post("1", 500, 40, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)),
			post("2", 900, 60, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)),
			post("3", 200, 20, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func TestGenerateReport_DateWindowAndSummary(t *testing.T) {
	e := newTestEngine(reportClient())

	out, err := e.GenerateReport(context.Background(), "55", "2024-01-01", "2024-03-31")
	require.NoError(t, err)

	require.Equal(t, "brand", out.AccountInfo.Username)
	require.Equal(t, 10000, out.AccountInfo.Followers)
	require.Equal(t, "2024-01-01 to 2024-03-31", out.Period)

	// Post 3 is one second past end-of-day of the end date.
	require.Equal(t, 2, out.Summary.PostsAnalyzed)
	require.Equal(t, 1400, out.Summary.TotalLikes)
	require.Equal(t, 100, out.Summary.TotalComments)
	require.Equal(t, 700.0, out.Summary.AvgLikes)
	require.Equal(t, 50.0, out.Summary.AvgComments)
	// (700 + 50) / 10000 * 100 = 7.5
	require.Equal(t, 7.5, out.Summary.EngagementRate)

	require.Len(t, out.TopPostsByLikes, 2)
	require.Equal(t, 900, out.TopPostsByLikes[0].Likes)
	require.Equal(t, "https://www.instagram.com/p/sc2/", out.TopPostsByLikes[0].URL)
}

func TestGenerateReport_CaptionPreviewKeepsRunesIntact(t *testing.T) {
	client := reportClient()
	long := strings.Repeat("é", captionPreviewLen+20)
	client.posts = []instagram.Post{post("1", 500, 40, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))}
	client.posts[0].Caption = long

	out, err := newTestEngine(client).GenerateReport(context.Background(), "55", "", "")
	require.NoError(t, err)
	require.Len(t, out.TopPostsByLikes, 1)

	caption := out.TopPostsByLikes[0].Caption
	require.True(t, utf8.ValidString(caption), "preview must not split a rune")
	require.Equal(t, captionPreviewLen, utf8.RuneCountInString(caption))
}

func TestGenerateReport_AllTime(t *testing.T) {
	e := newTestEngine(reportClient())

	out, err := e.GenerateReport(context.Background(), "55", "", "")
	require.NoError(t, err)
	require.Equal(t, "all time", out.Period)
	require.Equal(t, 3, out.Summary.PostsAnalyzed)
}

func TestGenerateReport_EmptyPeriodHasZeroSummary(t *testing.T) {
	e := newTestEngine(reportClient())

	out, err := e.GenerateReport(context.Background(), "55", "2020-01-01", "2020-12-31")
	require.NoError(t, err)
	require.Zero(t, out.Summary.PostsAnalyzed)
	require.Zero(t, out.Summary.EngagementRate, "no posts must not divide by zero")
	require.Empty(t, out.TopPostsByLikes)
}

func TestGenerateReport_BadDates(t *testing.T) {
	e := newTestEngine(reportClient())
	_, err := e.GenerateReport(context.Background(), "55", "2024-13-01", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "INVALID_INPUT")
}
