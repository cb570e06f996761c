package analysis

import (
	"context"
	"fmt"

	"github.com/leadscope/mcpgram/internal/instagram"
	"github.com/leadscope/mcpgram/internal/resolver"
	"github.com/leadscope/mcpgram/pkg/apperr"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// AccountTypes tallies account categories inside a sample.
type AccountTypes struct {
	Private  int `json:"private"`
	Verified int `json:"verified"`
}

// CompactProfile is a trimmed user record for sample listings.
type CompactProfile struct {
	PK         string `json:"pk"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	IsPrivate  bool   `json:"is_private"`
	IsVerified bool   `json:"is_verified"`
}

// Demographics is the result of extract_demographics.
type Demographics struct {
	SampleAnalyzed     int                 `json:"sampleAnalyzed"`
	AccountTypes       AccountTypes        `json:"accountTypes"`
	SampleUserProfiles []CompactProfile    `json:"sampleUserProfiles"`
	Resolution         resolver.Resolution `json:"resolution"`
}

// profileListingCap bounds the profile listing inside the result payload.
const profileListingCap = 10

// ExtractDemographics samples engaged users around a target: likers for a
// post, followers for an account.
func (e *Engine) ExtractDemographics(ctx context.Context, id resolver.Identity, sampleSize int) (Demographics, error) {
	if sampleSize <= 0 || sampleSize > e.caps.SampleSize {
		sampleSize = e.caps.SampleSize
	}

	var feed pagination.CursorFeed[instagram.UserProfile]
	switch id.Kind {
	case resolver.KindPost:
		feed = e.client.MediaLikers(id.ID)
	case resolver.KindAccount:
		feed = e.client.AccountFollowers(id.ID)
	default:
		return Demographics{}, fmt.Errorf("%s: unsupported target kind %q", apperr.InvalidInput, id.Kind)
	}

	raw, err := pagination.Accumulate(ctx, feed, sampleSize, e.pacing)
	if err != nil {
		return Demographics{}, err
	}

	collector := NewCollector()
	for _, p := range raw {
		collector.AddUser(p)
	}
	users := collector.Users()
	if len(users) > sampleSize {
		users = users[:sampleSize]
	}

	out := Demographics{SampleAnalyzed: len(users), Resolution: id.Resolution}
	for i, u := range users {
		if u.IsPrivate {
			out.AccountTypes.Private++
		}
		if u.IsVerified {
			out.AccountTypes.Verified++
		}
		if i < profileListingCap {
			out.SampleUserProfiles = append(out.SampleUserProfiles, CompactProfile{
				PK:         u.PK,
				Username:   u.Username,
				FullName:   u.FullName,
				IsPrivate:  u.IsPrivate,
				IsVerified: u.IsVerified,
			})
		}
	}
	return out, nil
}
