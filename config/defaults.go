package config

import "time"

// Default limits and pacing for the Instagram analytics MCP server. The
// provider throttles aggressively, so every cap here bounds total remote work
// per tool call. Values can be overridden through the environment (config.go).

const (
	// Concurrency
	DefaultMaxConcurrentRequests = 4

	// Sampling caps
	DefaultMaxComments     = 100
	DefaultSampleSize      = 50
	DefaultLeadCap         = 50
	DefaultReportPostCap   = 200
	DefaultTopPostsCount   = 3
	DefaultSampleCommentsN = 10
)

const (
	// Inter-page pacing bounds (randomized uniform draw)
	DefaultPacingMin = 1 * time.Second
	DefaultPacingMax = 3 * time.Second

	// Timeouts
	DefaultOperationTimeout      = 120 * time.Second
	DefaultAcquireRequestTimeout = 2 * time.Second
)
