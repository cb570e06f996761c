package analysis

import (
	"context"
	"fmt"

	"github.com/leadscope/mcpgram/internal/resolver"
	"github.com/leadscope/mcpgram/pkg/apperr"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// LeadList is the result of identify_leads.
type LeadList struct {
	Leads        []Lead              `json:"leads"`
	SampledUsers int                 `json:"sampledUsers"`
	Resolution   resolver.Resolution `json:"resolution"`
}

// IdentifyLeads samples engaged users around a target and evaluates them
// against the caller's criteria. Post targets sample commenters (so comment
// volume and comment keywords are available); account targets sample
// followers, whose comment-based criteria can only fail.
func (e *Engine) IdentifyLeads(ctx context.Context, id resolver.Identity, crit Criteria) (LeadList, error) {
	collector := NewCollector()

	switch id.Kind {
	case resolver.KindPost:
		comments, err := pagination.Accumulate(ctx, e.client.MediaComments(id.ID), e.caps.MaxComments, e.pacing)
		if err != nil {
			return LeadList{}, err
		}
		for _, cm := range comments {
			collector.AddComment(cm)
		}
	case resolver.KindAccount:
		followers, err := pagination.Accumulate(ctx, e.client.AccountFollowers(id.ID), e.caps.MaxComments, e.pacing)
		if err != nil {
			return LeadList{}, err
		}
		for _, p := range followers {
			collector.AddUser(p)
		}
	default:
		return LeadList{}, fmt.Errorf("%s: unsupported target kind %q", apperr.InvalidInput, id.Kind)
	}

	leads := e.qualifyLeads(ctx, collector.Users(), crit)
	return LeadList{
		Leads:        leads,
		SampledUsers: collector.Len(),
		Resolution:   id.Resolution,
	}, nil
}
