package registry

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func toolNames(tools []mcp.Tool) []string {
	var names []string
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return names
}

func TestSamplingToolFilter(t *testing.T) {
	all := []mcp.Tool{
		{Name: "analyze_post_comments"},
		{Name: "extract_demographics"},
		{Name: "identify_leads"},
		{Name: "compare_accounts"},
	}

	t.Run("default passes everything through", func(t *testing.T) {
		t.Setenv("MCPGRAM_DISABLE_SAMPLING", "")
		f := NewSamplingToolFilterFromEnv()
		assert.Len(t, f.FilterTools(context.Background(), all), len(all))
	})

	t.Run("disabled hides the sampling tools", func(t *testing.T) {
		t.Setenv("MCPGRAM_DISABLE_SAMPLING", "true")
		f := NewSamplingToolFilterFromEnv()
		got := toolNames(f.FilterTools(context.Background(), all))
		assert.Equal(t, []string{"analyze_post_comments", "compare_accounts"}, got)
	})
}
