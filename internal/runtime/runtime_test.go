package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadscope/mcpgram/config"
)

func TestNewLimits_Fallbacks(t *testing.T) {
	l := NewLimits(0, 0)
	require.Equal(t, config.DefaultMaxConcurrentRequests, l.MaxConcurrentRequests)
	require.Equal(t, config.DefaultOperationTimeout, l.OperationTimeout)

	l = NewLimits(2, 10*time.Second)
	require.Equal(t, 2, l.MaxConcurrentRequests)
	require.Equal(t, 10*time.Second, l.OperationTimeout)
}

func TestController_SemaphoreBounds(t *testing.T) {
	c := NewController(NewLimits(1, time.Minute))
	require.NoError(t, c.AcquireRequest(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, c.AcquireRequest(ctx), "second acquire must block until release")

	c.ReleaseRequest()
	require.NoError(t, c.AcquireRequest(context.Background()))
	c.ReleaseRequest()
}
