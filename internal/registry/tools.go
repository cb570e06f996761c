package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/leadscope/mcpgram/internal/analysis"
	"github.com/leadscope/mcpgram/internal/export"
	"github.com/leadscope/mcpgram/internal/resolver"
	"github.com/leadscope/mcpgram/internal/session"
	"github.com/leadscope/mcpgram/pkg/apperr"
	"github.com/leadscope/mcpgram/pkg/validation"
)

// Deps wires the components every tool handler runs through, in order:
// session, resolver, engine, and the optional export writer.
type Deps struct {
	Session  *session.Manager
	Resolver *resolver.Resolver
	Engine   *analysis.Engine
	Exports  *export.Writer
}

// --- Input / Output Schemas (typed for discovery) ---

// AnalyzePostCommentsInput defines parameters for analyze_post_comments.
type AnalyzePostCommentsInput struct {
	PostURL     string `json:"post_url" validate:"required,ig_post_url" jsonschema_description:"Public post URL like https://www.instagram.com/p/SHORTCODE/"`
	MaxComments int    `json:"max_comments,omitempty" validate:"omitempty,min=1" jsonschema_description:"Max comments to fetch (default and upper bound 100)"`
}

// CompareAccountsInput defines parameters for compare_accounts.
type CompareAccountsInput struct {
	Accounts []string `json:"accounts" validate:"required,min=2,max=10,dive,ig_handle" jsonschema_description:"Handles to compare (2-10)"`
	Metrics  []string `json:"metrics,omitempty" validate:"omitempty,dive,oneof=followers engagement posts" jsonschema_description:"Metrics to compute (default followers,engagement,posts)"`
}

// ExtractDemographicsInput defines parameters for extract_demographics.
type ExtractDemographicsInput struct {
	Target     string `json:"target" validate:"required,ig_target" jsonschema_description:"Account handle or post URL"`
	SampleSize int    `json:"sample_size,omitempty" validate:"omitempty,min=1" jsonschema_description:"Users to sample (default and upper bound 50)"`
}

// CriteriaInput carries the optional lead qualification criteria. Zero
// values mean the criterion is unspecified.
type CriteriaInput struct {
	MinComments  int      `json:"min_comments,omitempty" validate:"omitempty,min=1" jsonschema_description:"Minimum comments left by the user"`
	MinFollowers int      `json:"min_followers,omitempty" validate:"omitempty,min=1" jsonschema_description:"Minimum follower count"`
	Keywords     []string `json:"keywords,omitempty" jsonschema_description:"Keywords matched case-insensitively against biography and comments"`
}

// IdentifyLeadsInput defines parameters for identify_leads.
type IdentifyLeadsInput struct {
	Target     string        `json:"target" validate:"required,ig_target" jsonschema_description:"Account handle or post URL"`
	Criteria   CriteriaInput `json:"criteria,omitempty"`
	ExportPath string        `json:"export_path,omitempty" jsonschema_description:"Optional .xlsx destination inside an allowed export directory"`
}

// GenerateEngagementReportInput defines parameters for generate_engagement_report.
type GenerateEngagementReportInput struct {
	Account    string `json:"account" validate:"required,ig_handle" jsonschema_description:"Account handle"`
	StartDate  string `json:"start_date,omitempty" validate:"omitempty,reportdate" jsonschema_description:"Period start, YYYY-MM-DD"`
	EndDate    string `json:"end_date,omitempty" validate:"omitempty,reportdate" jsonschema_description:"Period end (inclusive), YYYY-MM-DD"`
	ExportPath string `json:"export_path,omitempty" jsonschema_description:"Optional .xlsx destination inside an allowed export directory"`
}

// LeadListOutput is the identify_leads result with the export destination.
type LeadListOutput struct {
	analysis.LeadList
	ExportedTo string `json:"exportedTo,omitempty"`
}

// EngagementReportOutput is the report result with the export destination.
type EngagementReportOutput struct {
	analysis.EngagementReport
	ExportedTo string `json:"exportedTo,omitempty"`
}

// RegisterAnalysisTools defines the five analytical tools and their handlers.
func RegisterAnalysisTools(s *server.MCPServer, reg *Registry, deps Deps) {
	// analyze_post_comments
	apc := mcp.NewTool(
		"analyze_post_comments",
		mcp.WithDescription("Fetch up to max_comments comments from a post, deduplicate commenters, flag repeat commenters as potential leads, and include a bounded comment sample. Theme extraction is delegated to a configured model and reported as disabled otherwise. The result carries resolution=direct|fallback: fallback means the post id could not be resolved and the shortcode was used, which some provider feeds reject."),
		mcp.WithInputSchema[AnalyzePostCommentsInput](),
		mcp.WithOutputSchema[analysis.CommentAnalysis](),
	)
	s.AddTool(apc, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in AnalyzePostCommentsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return apperr.FromText(msg), nil
		}
		id, errRes := deps.begin(ctx, in.PostURL)
		if errRes != nil {
			return errRes, nil
		}
		out, err := deps.Engine.AnalyzePostComments(ctx, id, in.MaxComments)
		if err != nil {
			return deps.fail(err), nil
		}
		summary := fmt.Sprintf("comments=%d unique=%d leads=%d resolution=%s",
			out.TotalCommentsFetched, out.UniqueCommenters, len(out.PotentialLeads), out.Resolution)
		res := mcp.NewToolResultStructured(out, summary)
		res.Content = []mcp.Content{mcp.NewTextContent(summary)}
		return res, nil
	}))
	reg.Register(apc)

	// compare_accounts
	ca := mcp.NewTool(
		"compare_accounts",
		mcp.WithDescription("Compare 2-10 accounts on selected metrics (followers, engagement, posts). Engagement is computed over a small sample of recent posts. A handle that cannot be looked up yields an error entry for that handle only; the comparison still succeeds for the rest."),
		mcp.WithInputSchema[CompareAccountsInput](),
		mcp.WithOutputSchema[analysis.AccountComparison](),
	)
	s.AddTool(ca, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CompareAccountsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return apperr.FromText(msg), nil
		}
		if errRes := deps.ensureSession(ctx); errRes != nil {
			return errRes, nil
		}
		out, err := deps.Engine.CompareAccounts(ctx, in.Accounts, in.Metrics)
		if err != nil {
			return deps.fail(err), nil
		}
		failed := 0
		for _, entry := range out.Accounts {
			if entry.Error != "" {
				failed++
			}
		}
		summary := fmt.Sprintf("accounts=%d failed=%d metrics=%s", len(out.Accounts), failed, strings.Join(out.Metrics, ","))
		res := mcp.NewToolResultStructured(out, summary)
		res.Content = []mcp.Content{mcp.NewTextContent(summary)}
		return res, nil
	}))
	reg.Register(ca)

	// extract_demographics
	ed := mcp.NewTool(
		"extract_demographics",
		mcp.WithDescription("Sample engaged users around a target (followers of an account, likers of a post) and tally private/verified account types, with a small profile listing."),
		mcp.WithInputSchema[ExtractDemographicsInput](),
		mcp.WithOutputSchema[analysis.Demographics](),
	)
	s.AddTool(ed, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ExtractDemographicsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return apperr.FromText(msg), nil
		}
		id, errRes := deps.begin(ctx, in.Target)
		if errRes != nil {
			return errRes, nil
		}
		out, err := deps.Engine.ExtractDemographics(ctx, id, in.SampleSize)
		if err != nil {
			return deps.fail(err), nil
		}
		summary := fmt.Sprintf("sampled=%d private=%d verified=%d", out.SampleAnalyzed, out.AccountTypes.Private, out.AccountTypes.Verified)
		res := mcp.NewToolResultStructured(out, summary)
		res.Content = []mcp.Content{mcp.NewTextContent(summary)}
		return res, nil
	}))
	reg.Register(ed)

	// identify_leads
	il := mcp.NewTool(
		"identify_leads",
		mcp.WithDescription("Sample engaged users around a target and qualify them against criteria: min_followers, min_comments, keywords (matched against biography and comment text). Each lead lists the satisfied criteria as reasons. Results are capped at 50 in first-encounter order. Set export_path to also write the list as an .xlsx workbook."),
		mcp.WithInputSchema[IdentifyLeadsInput](),
		mcp.WithOutputSchema[LeadListOutput](),
	)
	s.AddTool(il, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in IdentifyLeadsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return apperr.FromText(msg), nil
		}
		id, errRes := deps.begin(ctx, in.Target)
		if errRes != nil {
			return errRes, nil
		}
		list, err := deps.Engine.IdentifyLeads(ctx, id, toCriteria(in.Criteria))
		if err != nil {
			return deps.fail(err), nil
		}
		out := LeadListOutput{LeadList: list}
		if in.ExportPath != "" {
			dest, err := deps.Exports.Leads(in.ExportPath, list.Leads)
			if err != nil {
				return apperr.Wrapf(apperr.ExportFailed, "%v", err), nil
			}
			out.ExportedTo = dest
		}
		summary := fmt.Sprintf("leads=%d sampled=%d resolution=%s", len(out.Leads), out.SampledUsers, out.Resolution)
		res := mcp.NewToolResultStructured(out, summary)
		res.Content = []mcp.Content{mcp.NewTextContent(summary)}
		return res, nil
	}))
	reg.Register(il)

	// generate_engagement_report
	ger := mcp.NewTool(
		"generate_engagement_report",
		mcp.WithDescription("Build an engagement report for an account: profile summary, like/comment totals and averages, engagement rate, and the top 3 posts by likes. start_date/end_date (YYYY-MM-DD) bound the period, end date inclusive. Set export_path to also write the report as an .xlsx workbook."),
		mcp.WithInputSchema[GenerateEngagementReportInput](),
		mcp.WithOutputSchema[EngagementReportOutput](),
	)
	s.AddTool(ger, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in GenerateEngagementReportInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return apperr.FromText(msg), nil
		}
		id, errRes := deps.begin(ctx, in.Account)
		if errRes != nil {
			return errRes, nil
		}
		report, err := deps.Engine.GenerateReport(ctx, id.ID, in.StartDate, in.EndDate)
		if err != nil {
			return deps.fail(err), nil
		}
		out := EngagementReportOutput{EngagementReport: report}
		if in.ExportPath != "" {
			dest, err := deps.Exports.Report(in.ExportPath, report)
			if err != nil {
				return apperr.Wrapf(apperr.ExportFailed, "%v", err), nil
			}
			out.ExportedTo = dest
		}
		summary := fmt.Sprintf("account=%s period=%q posts=%d engagement=%.2f%%",
			out.AccountInfo.Username, out.Period, out.Summary.PostsAnalyzed, out.Summary.EngagementRate)
		res := mcp.NewToolResultStructured(out, summary)
		res.Content = []mcp.Content{mcp.NewTextContent(summary)}
		return res, nil
	}))
	reg.Register(ger)
}

// begin runs the shared front half of target-based operations: session
// check, target parse, identity resolution.
func (d Deps) begin(ctx context.Context, target string) (resolver.Identity, *mcp.CallToolResult) {
	if errRes := d.ensureSession(ctx); errRes != nil {
		return resolver.Identity{}, errRes
	}
	parsed, err := resolver.ParseTarget(target)
	if err != nil {
		return resolver.Identity{}, apperr.FromText(err.Error())
	}
	id, err := d.Resolver.Identify(ctx, parsed)
	if err != nil {
		return resolver.Identity{}, d.fail(err)
	}
	return id, nil
}

func (d Deps) ensureSession(ctx context.Context) *mcp.CallToolResult {
	if err := d.Session.EnsureAuthenticated(ctx); err != nil {
		return d.fail(err)
	}
	return nil
}

// fail maps an internal error to the external taxonomy. Auth-invalidation
// failures also invalidate the session so the next call re-authenticates.
func (d Deps) fail(err error) *mcp.CallToolResult {
	msg := err.Error()
	if strings.HasPrefix(msg, string(apperr.InvalidInput)) {
		return apperr.FromText(msg)
	}
	code := apperr.Classify(err)
	if code == apperr.AuthRequired {
		d.Session.Invalidate()
	}
	return apperr.New(code, msg)
}

// toCriteria converts the wire shape into the engine's criteria, mapping
// zero values to "unspecified".
func toCriteria(in CriteriaInput) analysis.Criteria {
	var crit analysis.Criteria
	if in.MinComments > 0 {
		n := in.MinComments
		crit.MinComments = &n
	}
	if in.MinFollowers > 0 {
		n := in.MinFollowers
		crit.MinFollowers = &n
	}
	crit.Keywords = in.Keywords
	return crit
}
