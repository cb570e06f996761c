package analysis

import (
	"github.com/leadscope/mcpgram/config"
	"github.com/leadscope/mcpgram/internal/instagram"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// Caps bounds the remote work a single operation may perform.
type Caps struct {
	MaxComments     int
	SampleSize      int
	LeadCap         int
	ReportPostCap   int
	TopPostsCount   int
	SampleCommentsN int

	// Number of recent posts sampled when computing an account's
	// engagement rate outside full reports.
	EngagementSample int
}

// DefaultCaps returns the configured defaults.
func DefaultCaps() Caps {
	return Caps{
		MaxComments:      config.DefaultMaxComments,
		SampleSize:       config.DefaultSampleSize,
		LeadCap:          config.DefaultLeadCap,
		ReportPostCap:    config.DefaultReportPostCap,
		TopPostsCount:    config.DefaultTopPostsCount,
		SampleCommentsN:  config.DefaultSampleCommentsN,
		EngagementSample: 12,
	}
}

// Engine turns accumulated feed pages into the five report shapes. It owns no
// session state; callers ensure authentication before invoking it.
type Engine struct {
	client instagram.Client
	pacing pagination.Pacing
	caps   Caps
	themes *ThemeSummarizer
}

// NewEngine constructs an Engine. themes may be nil; theme summaries are then
// reported as disabled.
func NewEngine(client instagram.Client, pacing pagination.Pacing, caps Caps, themes *ThemeSummarizer) *Engine {
	if caps.LeadCap <= 0 {
		caps = DefaultCaps()
	}
	return &Engine{client: client, pacing: pacing, caps: caps, themes: themes}
}

// Caps exposes the effective caps for telemetry and tool schema defaults.
func (e *Engine) Caps() Caps {
	return e.caps
}
