package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Criteria qualifies engaged users as leads. Nil/empty fields are not
// evaluated and do not appear in the reasons list.
type Criteria struct {
	MinComments  *int     `json:"min_comments,omitempty"`
	MinFollowers *int     `json:"min_followers,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// needsEnrichment reports whether evaluating u against the criteria requires
// a profile fetch: a follower check with no follower count, or a keyword
// check with no biography. Feed items usually lack both fields, but follower
// feeds can carry a count without a biography.
func (c Criteria) needsEnrichment(u *EngagedUser) bool {
	if c.MinFollowers != nil && u.FollowerCount == nil {
		return true
	}
	return len(c.Keywords) > 0 && u.Biography == ""
}

// Lead is an engaged user that satisfied the criteria, annotated with the
// satisfied sub-criteria in human-readable form.
type Lead struct {
	EngagedUser
	Reasons []string `json:"reasons"`
}

// qualifyLeads enriches users where the criteria demand profile fields, then
// evaluates every user against the criteria. The returned list preserves
// first-encounter order and is capped at the configured lead limit.
//
// Enrichment failures degrade instead of aborting: a user with an unknown
// follower count fails follower criteria, and a missing biography simply
// contributes nothing to keyword matching.
func (e *Engine) qualifyLeads(ctx context.Context, users []*EngagedUser, crit Criteria) []Lead {
	logger := zerolog.Ctx(ctx)

	var leads []Lead
	for _, u := range users {
		if crit.needsEnrichment(u) {
			info, err := e.client.UserInfo(ctx, u.PK)
			if err != nil {
				logger.Warn().Err(err).Str("pk", u.PK).Str("username", u.Username).
					Msg("analysis: profile enrichment failed, evaluating degraded")
			} else {
				n := info.FollowerCount
				u.FollowerCount = &n
				u.Biography = info.Biography
				u.IsPrivate = info.IsPrivate
				u.IsVerified = info.IsVerified
			}
		}

		reasons, ok := evaluate(u, crit)
		if !ok {
			continue
		}
		leads = append(leads, Lead{EngagedUser: *u, Reasons: reasons})
		if len(leads) >= e.caps.LeadCap {
			break
		}
	}
	return leads
}

// evaluate checks a single user against the criteria and collects the
// satisfied sub-criteria. All specified criteria must hold.
func evaluate(u *EngagedUser, crit Criteria) ([]string, bool) {
	var reasons []string

	if crit.MinFollowers != nil {
		if u.FollowerCount == nil || *u.FollowerCount < *crit.MinFollowers {
			return nil, false
		}
		reasons = append(reasons, fmt.Sprintf("followers %d >= min %d", *u.FollowerCount, *crit.MinFollowers))
	}

	if crit.MinComments != nil {
		if len(u.Comments) < *crit.MinComments {
			return nil, false
		}
		reasons = append(reasons, fmt.Sprintf("comments %d >= min %d", len(u.Comments), *crit.MinComments))
	}

	if len(crit.Keywords) > 0 {
		kw, ok := matchKeyword(u, crit.Keywords)
		if !ok {
			return nil, false
		}
		reasons = append(reasons, fmt.Sprintf("keyword %q matched", kw))
	}

	return reasons, true
}

// matchKeyword returns the first keyword found case-insensitively in the
// user's biography or any associated comment.
func matchKeyword(u *EngagedUser, keywords []string) (string, bool) {
	bio := strings.ToLower(u.Biography)
	for _, kw := range keywords {
		needle := strings.ToLower(kw)
		if needle == "" {
			continue
		}
		if strings.Contains(bio, needle) {
			return kw, true
		}
		for _, cm := range u.Comments {
			if strings.Contains(strings.ToLower(cm), needle) {
				return kw, true
			}
		}
	}
	return "", false
}
