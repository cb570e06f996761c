package analysis

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/leadscope/mcpgram/pkg/pagination"
)

// Comparison metrics selectable by the caller.
const (
	MetricFollowers  = "followers"
	MetricEngagement = "engagement"
	MetricPosts      = "posts"
)

// DefaultMetrics is used when the caller specifies none.
func DefaultMetrics() []string {
	return []string{MetricFollowers, MetricEngagement, MetricPosts}
}

// ComparisonEntry is one account's comparison row. A failed account carries
// only Error; other accounts are unaffected.
type ComparisonEntry struct {
	UserID         string   `json:"userId,omitempty"`
	FullName       string   `json:"fullName,omitempty"`
	IsPrivate      bool     `json:"isPrivate,omitempty"`
	IsVerified     bool     `json:"isVerified,omitempty"`
	Followers      *int     `json:"followers,omitempty"`
	Posts          *int     `json:"posts,omitempty"`
	EngagementRate *float64 `json:"engagementRate,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// AccountComparison is the result of compare_accounts.
type AccountComparison struct {
	Metrics  []string                   `json:"metrics"`
	Accounts map[string]ComparisonEntry `json:"accounts"`
}

// CompareAccounts looks up each handle and computes the requested metrics.
// Lookup failures are captured per account so a single bad handle never
// fails the whole comparison.
func (e *Engine) CompareAccounts(ctx context.Context, handles []string, metrics []string) (AccountComparison, error) {
	if len(metrics) == 0 {
		metrics = DefaultMetrics()
	}
	logger := zerolog.Ctx(ctx)

	out := AccountComparison{
		Metrics:  metrics,
		Accounts: make(map[string]ComparisonEntry, len(handles)),
	}
	for _, handle := range handles {
		entry, err := e.compareOne(ctx, handle, metrics)
		if err != nil {
			logger.Warn().Err(err).Str("handle", handle).Msg("analysis: account comparison entry failed")
			out.Accounts[handle] = ComparisonEntry{Error: err.Error()}
			continue
		}
		out.Accounts[handle] = entry
	}
	return out, nil
}

func (e *Engine) compareOne(ctx context.Context, handle string, metrics []string) (ComparisonEntry, error) {
	userID, err := e.client.UserIDByHandle(ctx, handle)
	if err != nil {
		return ComparisonEntry{}, err
	}
	info, err := e.client.UserInfo(ctx, userID)
	if err != nil {
		return ComparisonEntry{}, err
	}

	entry := ComparisonEntry{
		UserID:     userID,
		FullName:   info.FullName,
		IsPrivate:  info.IsPrivate,
		IsVerified: info.IsVerified,
	}
	if slices.Contains(metrics, MetricFollowers) {
		n := info.FollowerCount
		entry.Followers = &n
	}
	if slices.Contains(metrics, MetricPosts) {
		n := info.MediaCount
		entry.Posts = &n
	}
	if slices.Contains(metrics, MetricEngagement) {
		posts, err := pagination.Accumulate(ctx, e.client.AccountPosts(userID), e.caps.EngagementSample, e.pacing)
		if err != nil {
			return ComparisonEntry{}, err
		}
		var likes, comments int
		for _, p := range posts {
			likes += p.LikeCount
			comments += p.CommentCount
		}
		rate := EngagementRate(likes, comments, len(posts), info.FollowerCount)
		entry.EngagementRate = &rate
	}
	return entry, nil
}
