package runtime

import (
	"context"
	"time"

	"github.com/leadscope/mcpgram/config"
	"golang.org/x/sync/semaphore"
)

// Limits captures the concurrency and timing guardrails configured for the
// server. The provider throttles hard, so concurrency stays low and every
// tool call is bounded by the operation timeout.
type Limits struct {
	MaxConcurrentRequests int

	OperationTimeout      time.Duration
	AcquireRequestTimeout time.Duration
}

// NewLimits initializes Limits with fallbacks when values are unset.
func NewLimits(maxConcurrentRequests int, operationTimeout time.Duration) Limits {
	if maxConcurrentRequests <= 0 {
		maxConcurrentRequests = config.DefaultMaxConcurrentRequests
	}
	if operationTimeout <= 0 {
		operationTimeout = config.DefaultOperationTimeout
	}
	return Limits{
		MaxConcurrentRequests: maxConcurrentRequests,
		OperationTimeout:      operationTimeout,
		AcquireRequestTimeout: config.DefaultAcquireRequestTimeout,
	}
}

// Controller coordinates the request semaphore.
type Controller struct {
	limits           Limits
	requestSemaphore *semaphore.Weighted
}

// NewController constructs a Controller backed by a weighted semaphore.
func NewController(limits Limits) *Controller {
	return &Controller{
		limits:           limits,
		requestSemaphore: semaphore.NewWeighted(int64(limits.MaxConcurrentRequests)),
	}
}

// AcquireRequest reserves capacity for an incoming request.
func (c *Controller) AcquireRequest(ctx context.Context) error {
	return c.requestSemaphore.Acquire(ctx, 1)
}

// ReleaseRequest frees previously-acquired request capacity.
func (c *Controller) ReleaseRequest() {
	c.requestSemaphore.Release(1)
}

// LimitsSnapshot exposes the configured guardrails for telemetry.
func (c *Controller) LimitsSnapshot() Limits {
	return c.limits
}
