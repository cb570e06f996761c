package analysis

import (
	"context"

	"github.com/leadscope/mcpgram/internal/resolver"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// SampleComment is one raw comment included in the analysis output.
type SampleComment struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// CommentAnalysis is the result of analyze_post_comments.
type CommentAnalysis struct {
	TotalCommentsFetched int                 `json:"totalCommentsFetched"`
	UniqueCommenters     int                 `json:"uniqueCommenters"`
	PotentialLeads       []Lead              `json:"potentialLeads"`
	SampleComments       []SampleComment     `json:"sampleComments"`
	Resolution           resolver.Resolution `json:"resolution"`
	Themes               *ThemeSummary       `json:"themes,omitempty"`
}

// repeatCommenterThreshold marks a commenter as a potential lead once they
// have left this many comments on the post.
const repeatCommenterThreshold = 2

// AnalyzePostComments accumulates up to maxComments comments for a media,
// deduplicates commenters, and flags repeat commenters as potential leads.
// Theme extraction is delegated to the optional summarizer.
func (e *Engine) AnalyzePostComments(ctx context.Context, id resolver.Identity, maxComments int) (CommentAnalysis, error) {
	if maxComments <= 0 || maxComments > e.caps.MaxComments {
		maxComments = e.caps.MaxComments
	}

	comments, err := pagination.Accumulate(ctx, e.client.MediaComments(id.ID), maxComments, e.pacing)
	if err != nil {
		return CommentAnalysis{}, err
	}

	collector := NewCollector()
	for _, cm := range comments {
		collector.AddComment(cm)
	}

	threshold := repeatCommenterThreshold
	leads := e.qualifyLeads(ctx, collector.Users(), Criteria{MinComments: &threshold})

	sampleN := e.caps.SampleCommentsN
	if sampleN > len(comments) {
		sampleN = len(comments)
	}
	samples := make([]SampleComment, 0, sampleN)
	texts := make([]string, 0, len(comments))
	for i, cm := range comments {
		if i < sampleN {
			samples = append(samples, SampleComment{Username: cm.User.Username, Text: cm.Text})
		}
		texts = append(texts, cm.Text)
	}

	out := CommentAnalysis{
		TotalCommentsFetched: len(comments),
		UniqueCommenters:     collector.Len(),
		PotentialLeads:       leads,
		SampleComments:       samples,
		Resolution:           id.Resolution,
	}
	if summary := e.themes.Summarize(ctx, texts); summary != nil {
		out.Themes = summary
	}
	return out, nil
}
