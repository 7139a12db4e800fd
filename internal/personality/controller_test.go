package personality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

func TestTickNoSwitchBelowThreshold(t *testing.T) {
	src := &rng.Scripted{IntFn: func(lo, hi int) int { return 14 }}
	c := NewController(src, nil)
	st, err := model.NewState(1)
	require.NoError(t, err)

	for i := 1; i <= 14; i++ {
		tr := c.Tick(st)
		require.False(t, tr.Switched, "tick %d", i)
		require.Equal(t, i, st.Tenure)
	}
}

func TestTickSwitchResetsTenureAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	src := &rng.Scripted{IntFn: func(lo, hi int) int {
		if lo == minTenure {
			return minTenure
		}
		// Personality choice: index 0 is Rusher.
		return 0
	}}
	c := NewController(src, zap.New(core))
	st, err := model.NewState(1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.False(t, c.Tick(st).Switched)
	}
	tr := c.Tick(st)
	require.True(t, tr.Switched)
	assert.Equal(t, model.Careful, tr.From)
	assert.Equal(t, model.Rusher, tr.To)
	assert.Equal(t, 0, st.Tenure)
	assert.Equal(t, model.Rusher, st.Personality)

	entries := logs.FilterMessage("personality switch").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Careful", fields["from"])
	assert.Equal(t, "Rusher", fields["to"])
}

func TestTickMaySelectSamePersonality(t *testing.T) {
	src := &rng.Scripted{IntFn: func(lo, hi int) int {
		if lo == minTenure {
			return lo
		}
		return 1 // Careful
	}}
	c := NewController(src, nil)
	st := &model.State{Personality: model.Careful, Tenure: 5, Speed: 1}

	tr := c.Tick(st)
	assert.True(t, tr.Switched)
	assert.Equal(t, model.Careful, tr.To)
	assert.Equal(t, 0, st.Tenure)
}

func TestTickTransitionsOnlyAboveDrawnThreshold(t *testing.T) {
	src := rng.NewSeeded(99)
	c := NewController(src, nil)
	st, err := model.NewState(1)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		before := st.Tenure
		tr := c.Tick(st)
		if tr.Switched {
			// The counter must have exceeded the minimum threshold.
			require.GreaterOrEqual(t, before+1, minTenure+1)
			require.Equal(t, 0, st.Tenure)
		} else {
			require.Equal(t, before+1, st.Tenure)
			require.LessOrEqual(t, st.Tenure, maxTenure-1)
		}
	}
}
