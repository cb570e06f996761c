package telemetry

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Hooks centralizes server lifecycle and provider-call logging. It is
// intentionally minimal; metrics backends can be added later under this
// package.
type Hooks struct {
	logger zerolog.Logger
}

// NewHooks constructs a Hooks instance with the provided logger.
func NewHooks(logger zerolog.Logger) *Hooks {
	return &Hooks{logger: logger}
}

// Build assembles the mcp-go server hooks backed by this logger.
func (h *Hooks) Build() *server.Hooks {
	hooks := &server.Hooks{}

	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		h.logger.Info().Str("session_id", session.SessionID()).Msg("session registered")
	})

	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		h.logger.Info().Str("session_id", session.SessionID()).Msg("session unregistered")
	})

	hooks.AddAfterListTools(func(ctx context.Context, id any, req *mcp.ListToolsRequest, res *mcp.ListToolsResult) {
		// Keep it light: tool count only
		h.logger.Info().Int("tools", len(res.Tools)).Msg("list_tools served")
	})

	hooks.AddAfterCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest, res *mcp.CallToolResult) {
		h.logger.Info().Str("tool", req.Params.Name).Msg("tool call served")
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		h.logger.Error().Str("method", string(method)).Err(err).Msg("request error")
	})

	return hooks
}

// OnProviderCall logs remote provider requests for rate-limit forensics. It
// matches the gateway observer signature.
func (h *Hooks) OnProviderCall(endpoint string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn().Str("endpoint", endpoint).Dur("duration", duration).Err(err).Msg("provider call failed")
		return
	}
	h.logger.Debug().Str("endpoint", endpoint).Dur("duration", duration).Msg("provider call completed")
}
