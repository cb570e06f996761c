package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Code defines a canonical error code used across tools.
type Code string

const (
	// Validation & Input
	InvalidInput Code = "INVALID_INPUT"

	// Remote provider
	NotFound         Code = "NOT_FOUND"
	AuthRequired     Code = "AUTH_REQUIRED"
	RateLimited      Code = "RATE_LIMITED"
	RemoteUnexpected Code = "REMOTE_UNEXPECTED"

	// Resource & Limits
	BusyResource Code = "BUSY_RESOURCE"
	Timeout      Code = "TIMEOUT"

	// Local IO
	ExportFailed Code = "EXPORT_FAILED"
)

// Sentinel errors raised at the provider boundary. Tool handlers classify
// them into codes with Classify; they are never surfaced raw to clients.
var (
	ErrNotFound     = errors.New("target not found")
	ErrAuthRequired = errors.New("authentication required")
	ErrRateLimited  = errors.New("rate limited by provider")
)

// Entry documents a code's standard message, retry semantics, and next steps.
type Entry struct {
	Code      Code
	Message   string
	Retryable bool
	NextSteps []string
}

// catalog maps canonical codes to guidance. Messages can be overridden per error.
var catalog = map[Code]Entry{
	InvalidInput: {Code: InvalidInput, Message: "invalid inputs", Retryable: true, NextSteps: []string{"Correct the inputs per schema and retry", "See examples in tool description"}},

	NotFound:         {Code: NotFound, Message: "account or post not found", Retryable: false, NextSteps: []string{"Verify the handle or post URL", "Private or deleted targets cannot be analyzed"}},
	AuthRequired:     {Code: AuthRequired, Message: "provider session invalid", Retryable: true, NextSteps: []string{"Retry; the server re-authenticates on the next call", "Check configured credentials if this persists"}},
	RateLimited:      {Code: RateLimited, Message: "provider is throttling requests", Retryable: true, NextSteps: []string{"Wait before retrying", "Reduce sample sizes or comment counts"}},
	RemoteUnexpected: {Code: RemoteUnexpected, Message: "provider request failed", Retryable: true, NextSteps: []string{"Retry; transient provider errors are common", "Narrow the request if retries keep failing"}},

	BusyResource: {Code: BusyResource, Message: "concurrent request limit reached", Retryable: true, NextSteps: []string{"Retry after a short delay"}},
	Timeout:      {Code: Timeout, Message: "operation exceeded configured time limit", Retryable: true, NextSteps: []string{"Reduce sample_size or max_comments", "Increase the operation timeout if the provider is slow"}},

	ExportFailed: {Code: ExportFailed, Message: "failed to write export workbook", Retryable: true, NextSteps: []string{"Verify the export path is inside an allowed directory", "Use an .xlsx extension"}},
}

// Classify maps an error from the provider boundary to a canonical code.
// Unrecognized errors classify as RemoteUnexpected.
func Classify(err error) Code {
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrAuthRequired):
		return AuthRequired
	case errors.Is(err, ErrRateLimited):
		return RateLimited
	default:
		return RemoteUnexpected
	}
}

// normalize builds a standard error string including next steps for MCP clients that
// surface only a message string. Format: "CODE: message" followed by a guidance tail.
func normalize(code Code, msg string) string {
	base := strings.TrimSpace(msg)
	e, ok := catalog[code]
	if !ok {
		// Unknown code; preserve as-is
		if base == "" {
			return string(code)
		}
		return fmt.Sprintf("%s: %s", string(code), base)
	}
	if base == "" {
		base = e.Message
	}
	guidance := ""
	if len(e.NextSteps) > 0 {
		guidance = " | nextSteps: " + strings.Join(e.NextSteps, "; ")
	}
	return fmt.Sprintf("%s: %s%s", e.Code, base, guidance)
}

// FromText parses a "CODE: message" string, enriches it with catalog guidance,
// and returns an MCP tool error result. Validation helpers emit such strings.
func FromText(text string) *mcp.CallToolResult {
	t := strings.TrimSpace(text)
	if t == "" {
		return mcp.NewToolResultError(normalize(InvalidInput, ""))
	}
	parts := strings.SplitN(t, ":", 2)
	code := Code(strings.TrimSpace(parts[0]))
	msg := ""
	if len(parts) > 1 {
		msg = strings.TrimSpace(parts[1])
	}
	return mcp.NewToolResultError(normalize(code, msg))
}

// New returns an MCP error result for a given code and optional message override.
func New(code Code, message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(normalize(code, message))
}

// Wrapf formats details and returns an MCP error result for the code.
func Wrapf(code Code, format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultError(normalize(code, fmt.Sprintf(format, args...)))
}

// FromError classifies err and returns an MCP error result carrying the
// original message, preserving the failure kind for the client.
func FromError(err error) *mcp.CallToolResult {
	if err == nil {
		return nil
	}
	return New(Classify(err), err.Error())
}
