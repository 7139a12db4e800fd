package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealSleepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := Real{}.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRealSleepWaits(t *testing.T) {
	require.NoError(t, Real{}.Sleep(context.Background(), time.Millisecond))
	require.NoError(t, Real{}.Sleep(context.Background(), 0))
}

func TestManualAccumulates(t *testing.T) {
	m := &Manual{}
	ctx := context.Background()
	require.NoError(t, m.Sleep(ctx, 10*time.Millisecond))
	require.NoError(t, m.Sleep(ctx, 5*time.Millisecond))
	assert.Equal(t, 15*time.Millisecond, m.Elapsed())
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 5 * time.Millisecond}, m.Sleeps())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, m.Sleep(cancelled, time.Second))
	assert.Equal(t, 15*time.Millisecond, m.Elapsed())
}
