package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/leadscope/mcpgram/internal/analysis"
)

// PathValidator gates export destinations. Implemented by security.Manager.
type PathValidator interface {
	ValidateExportPath(path string) (string, error)
}

// Writer persists analysis results as xlsx workbooks inside the allowed
// export directories.
type Writer struct {
	validator PathValidator
}

// NewWriter constructs a Writer over the given path validator.
func NewWriter(validator PathValidator) *Writer {
	return &Writer{validator: validator}
}

// Leads writes a lead list to path and returns the canonical destination.
func (w *Writer) Leads(path string, leads []analysis.Lead) (string, error) {
	dest, err := w.validator.ValidateExportPath(path)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Leads"
	f.SetSheetName("Sheet1", sheet)
	header := []any{"Username", "Full Name", "Followers", "Comments", "Verified", "Private", "Reasons"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("export: header row: %w", err)
	}
	for i, lead := range leads {
		followers := ""
		if lead.FollowerCount != nil {
			followers = strconv.Itoa(*lead.FollowerCount)
		}
		row := []any{
			lead.Username,
			lead.FullName,
			followers,
			len(lead.Comments),
			lead.IsVerified,
			lead.IsPrivate,
			strings.Join(lead.Reasons, "; "),
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("export: lead row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(dest); err != nil {
		return "", fmt.Errorf("export: save: %w", err)
	}
	return dest, nil
}

// Report writes an engagement report to path and returns the destination.
func (w *Writer) Report(path string, r analysis.EngagementReport) (string, error) {
	dest, err := w.validator.ValidateExportPath(path)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const summarySheet = "Summary"
	f.SetSheetName("Sheet1", summarySheet)
	rows := [][]any{
		{"Account", r.AccountInfo.Username},
		{"Full Name", r.AccountInfo.FullName},
		{"Followers", r.AccountInfo.Followers},
		{"Period", r.Period},
		{"Posts Analyzed", r.Summary.PostsAnalyzed},
		{"Total Likes", r.Summary.TotalLikes},
		{"Total Comments", r.Summary.TotalComments},
		{"Avg Likes", r.Summary.AvgLikes},
		{"Avg Comments", r.Summary.AvgComments},
		{"Engagement Rate %", r.Summary.EngagementRate},
	}
	for i := range rows {
		if err := f.SetSheetRow(summarySheet, "A"+strconv.Itoa(i+1), &rows[i]); err != nil {
			return "", fmt.Errorf("export: summary row %d: %w", i, err)
		}
	}

	const topSheet = "Top Posts"
	if _, err := f.NewSheet(topSheet); err != nil {
		return "", fmt.Errorf("export: top posts sheet: %w", err)
	}
	header := []any{"URL", "Likes", "Comments", "Taken At", "Caption"}
	if err := f.SetSheetRow(topSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("export: top posts header: %w", err)
	}
	for i, p := range r.TopPostsByLikes {
		row := []any{p.URL, p.Likes, p.Comments, p.TakenAt.Format("2006-01-02 15:04:05"), p.Caption}
		if err := f.SetSheetRow(topSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return "", fmt.Errorf("export: top post row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(dest); err != nil {
		return "", fmt.Errorf("export: save: %w", err)
	}
	return dest, nil
}
