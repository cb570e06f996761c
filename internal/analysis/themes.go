package analysis

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
)

// ThemeSummary reports the delegated natural-language theme extraction.
// When no model is wired the summary is marked disabled rather than omitted,
// so clients can tell "no themes" apart from "not analyzed".
type ThemeSummary struct {
	Enabled bool   `json:"enabled"`
	Summary string `json:"summary,omitempty"`
}

// ThemeSummarizer delegates comment theme extraction to a configured LLM.
// Sentiment and theme analysis is not implemented in-process.
type ThemeSummarizer struct {
	model llms.Model
}

// NewThemeSummarizer wraps the given model. A nil model yields a summarizer
// that reports themes as disabled.
func NewThemeSummarizer(model llms.Model) *ThemeSummarizer {
	return &ThemeSummarizer{model: model}
}

const themePrompt = "Summarize the recurring themes and overall tone of these social media comments in at most three sentences:\n\n"

// Summarize produces a theme summary for the given comment texts. Delegation
// failures are swallowed here: the summary degrades to disabled and the
// analytical result is still returned.
func (t *ThemeSummarizer) Summarize(ctx context.Context, comments []string) *ThemeSummary {
	if t == nil || t.model == nil || len(comments) == 0 {
		return &ThemeSummary{Enabled: false}
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, t.model, themePrompt+strings.Join(comments, "\n"))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("analysis: theme delegation failed")
		return &ThemeSummary{Enabled: false}
	}
	return &ThemeSummary{Enabled: true, Summary: strings.TrimSpace(out)}
}
