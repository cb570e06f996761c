package registry

import (
	"context"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// SamplingToolFilter conditionally hides the high-volume sampling tools.
// Operators on tightly throttled provider accounts can set
// MCPGRAM_DISABLE_SAMPLING=true to expose only the cheap lookup tools.
type SamplingToolFilter struct {
	disableSampling bool
}

// NewSamplingToolFilterFromEnv constructs a filter using MCPGRAM_DISABLE_SAMPLING.
func NewSamplingToolFilterFromEnv() *SamplingToolFilter {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MCPGRAM_DISABLE_SAMPLING")))
	disable := v == "1" || v == "true" || v == "yes"
	return &SamplingToolFilter{disableSampling: disable}
}

// samplingTools fan out across follower/liker feeds and cost many provider
// requests per call.
var samplingTools = map[string]struct{}{
	"extract_demographics": {},
	"identify_leads":       {},
}

// FilterTools implements server tool filtering semantics.
func (f *SamplingToolFilter) FilterTools(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
	if !f.disableSampling {
		return tools
	}
	out := make([]mcp.Tool, 0, len(tools))
	for _, t := range tools {
		if _, hidden := samplingTools[t.Name]; hidden {
			continue
		}
		out = append(out, t)
	}
	return out
}
