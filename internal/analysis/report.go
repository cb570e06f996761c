package analysis

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/leadscope/mcpgram/pkg/apperr"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// ReportAccountInfo summarizes the reported account.
type ReportAccountInfo struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Followers  int    `json:"followers"`
	Following  int    `json:"following"`
	TotalPosts int    `json:"totalPosts"`
	IsPrivate  bool   `json:"isPrivate"`
	IsVerified bool   `json:"isVerified"`
}

// ReportSummary aggregates the posts inside the report period.
type ReportSummary struct {
	PostsAnalyzed  int     `json:"postsAnalyzed"`
	TotalLikes     int     `json:"totalLikes"`
	TotalComments  int     `json:"totalComments"`
	AvgLikes       float64 `json:"avgLikes"`
	AvgComments    float64 `json:"avgComments"`
	EngagementRate float64 `json:"engagementRate"`
}

// TopPost is one entry of the top-posts ranking.
type TopPost struct {
	URL      string    `json:"url"`
	Likes    int       `json:"likes"`
	Comments int       `json:"comments"`
	TakenAt  time.Time `json:"takenAt"`
	Caption  string    `json:"caption,omitempty"`
}

// EngagementReport is the result of generate_engagement_report.
type EngagementReport struct {
	AccountInfo     ReportAccountInfo `json:"accountInfo"`
	Period          string            `json:"period"`
	Summary         ReportSummary     `json:"summary"`
	TopPostsByLikes []TopPost         `json:"topPostsByLikes"`
}

const captionPreviewLen = 80

// GenerateReport builds an engagement report for the account, sampling up to
// the configured post cap and filtering to the optional date range.
func (e *Engine) GenerateReport(ctx context.Context, userID, startDate, endDate string) (EngagementReport, error) {
	dates, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return EngagementReport{}, fmt.Errorf("%s: dates must be formatted YYYY-MM-DD: %w", apperr.InvalidInput, err)
	}

	info, err := e.client.UserInfo(ctx, userID)
	if err != nil {
		return EngagementReport{}, err
	}

	posts, err := pagination.Accumulate(ctx, e.client.AccountPosts(userID), e.caps.ReportPostCap, e.pacing)
	if err != nil {
		return EngagementReport{}, err
	}
	posts = FilterByDate(posts, dates)

	var likes, comments int
	for _, p := range posts {
		likes += p.LikeCount
		comments += p.CommentCount
	}

	summary := ReportSummary{
		PostsAnalyzed: len(posts),
		TotalLikes:    likes,
		TotalComments: comments,
	}
	if len(posts) > 0 {
		summary.AvgLikes = round2(float64(likes) / float64(len(posts)))
		summary.AvgComments = round2(float64(comments) / float64(len(posts)))
	}
	summary.EngagementRate = EngagementRate(likes, comments, len(posts), info.FollowerCount)

	var top []TopPost
	for _, p := range TopPostsByLikes(posts, e.caps.TopPostsCount) {
		caption := p.Caption
		// Truncate on rune boundaries; captions are user text and often
		// multi-byte.
		if utf8.RuneCountInString(caption) > captionPreviewLen {
			caption = string([]rune(caption)[:captionPreviewLen])
		}
		top = append(top, TopPost{
			URL:      "https://www.instagram.com/p/" + p.Shortcode + "/",
			Likes:    p.LikeCount,
			Comments: p.CommentCount,
			TakenAt:  p.TakenAt,
			Caption:  caption,
		})
	}

	return EngagementReport{
		AccountInfo: ReportAccountInfo{
			Username:   info.Username,
			FullName:   info.FullName,
			Followers:  info.FollowerCount,
			Following:  info.FollowingCount,
			TotalPosts: info.MediaCount,
			IsPrivate:  info.IsPrivate,
			IsVerified: info.IsVerified,
		},
		Period:          periodLabel(startDate, endDate),
		Summary:         summary,
		TopPostsByLikes: top,
	}, nil
}

func periodLabel(startDate, endDate string) string {
	switch {
	case startDate == "" && endDate == "":
		return "all time"
	case startDate == "":
		return "until " + endDate
	case endDate == "":
		return "since " + startDate
	default:
		return startDate + " to " + endDate
	}
}
