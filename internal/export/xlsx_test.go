package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leadscope/mcpgram/internal/analysis"
	"github.com/leadscope/mcpgram/internal/security"
)

func newWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	mgr, err := security.NewManager([]string{dir})
	require.NoError(t, err)
	return NewWriter(mgr), dir
}

func TestWriter_Leads(t *testing.T) {
	w, dir := newWriter(t)

	followers := 150
	leads := []analysis.Lead{
		{
			EngagedUser: analysis.EngagedUser{
				Username:      "buyer",
				FullName:      "Big Buyer",
				FollowerCount: &followers,
				Comments:      []string{"one", "two"},
			},
			Reasons: []string{"followers 150 >= min 100", "comments 2 >= min 2"},
		},
	}

	dest, err := w.Leads(filepath.Join(dir, "leads.xlsx"), leads)
	require.NoError(t, err)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	username, err := f.GetCellValue("Leads", "A2")
	require.NoError(t, err)
	require.Equal(t, "buyer", username)

	reasons, err := f.GetCellValue("Leads", "G2")
	require.NoError(t, err)
	require.Equal(t, "followers 150 >= min 100; comments 2 >= min 2", reasons)
}

func TestWriter_Report(t *testing.T) {
	w, dir := newWriter(t)

	report := analysis.EngagementReport{
		AccountInfo: analysis.ReportAccountInfo{Username: "brand", Followers: 10000},
		Period:      "2024-01-01 to 2024-03-31",
		Summary:     analysis.ReportSummary{PostsAnalyzed: 2, TotalLikes: 1400, EngagementRate: 7.5},
		TopPostsByLikes: []analysis.TopPost{
			{URL: "https://www.instagram.com/p/sc2/", Likes: 900, Comments: 60, TakenAt: time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)},
		},
	}

	dest, err := w.Report(filepath.Join(dir, "report.xlsx"), report)
	require.NoError(t, err)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	acct, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	require.Equal(t, "brand", acct)

	url, err := f.GetCellValue("Top Posts", "A2")
	require.NoError(t, err)
	require.Equal(t, "https://www.instagram.com/p/sc2/", url)
}

func TestWriter_DeniedPath(t *testing.T) {
	w, _ := newWriter(t)
	_, err := w.Leads(filepath.Join(t.TempDir(), "leads.xlsx"), nil)
	require.ErrorIs(t, err, security.ErrNotAllowed)
}
