package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestToolMiddleware_PassThrough(t *testing.T) {
	mw := NewMiddleware(NewController(NewLimits(2, time.Minute)))
	handler := mw.ToolMiddleware(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	res, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.Equal(t, "ok", textOf(t, res))
}

func TestToolMiddleware_BusyWhenSaturated(t *testing.T) {
	limits := NewLimits(1, time.Minute)
	limits.AcquireRequestTimeout = 20 * time.Millisecond
	ctrl := NewController(limits)
	mw := NewMiddleware(ctrl)

	// Saturate the only slot.
	require.NoError(t, ctrl.AcquireRequest(context.Background()))
	defer ctrl.ReleaseRequest()

	handler := mw.ToolMiddleware(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t.Fatal("handler must not run while saturated")
		return nil, nil
	})

	res, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "BUSY_RESOURCE")
}

func TestToolMiddleware_TimeoutMapped(t *testing.T) {
	limits := NewLimits(2, 30*time.Millisecond)
	mw := NewMiddleware(NewController(limits))

	handler := mw.ToolMiddleware(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	res, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "TIMEOUT")
}
