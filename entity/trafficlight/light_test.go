package trafficlight_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/trafficlight"
)

func TestYellowThenRed(t *testing.T) {
	l, err := trafficlight.NewYellow(2)
	require.NoError(t, err)
	assert.Equal(t, trafficlight.StateYellow, l.State())
	assert.Equal(t, 2.0, l.RemainingTime())

	l.Update(1.5)
	assert.Equal(t, trafficlight.StateYellow, l.State())
	assert.InDelta(t, 0.5, l.RemainingTime(), 1e-9)

	l.Update(0.5)
	assert.Equal(t, trafficlight.StateRed, l.State())
	assert.True(t, math.IsInf(l.RemainingTime(), 1))

	l.Update(1000)
	assert.Equal(t, trafficlight.StateRed, l.State())

	l.Reset()
	assert.Equal(t, trafficlight.StateYellow, l.State())
	assert.Equal(t, 0, l.Step())
}

func TestPhaseOverflow(t *testing.T) {
	l, err := trafficlight.New([]trafficlight.Phase{
		{State: trafficlight.StateGreen, Duration: 1},
		{State: trafficlight.StateYellow, Duration: 1},
		{State: trafficlight.StateRed, Duration: 3},
	})
	require.NoError(t, err)

	// 一步跨过两个相位
	l.Update(2.5)
	assert.Equal(t, trafficlight.StateRed, l.State())
	assert.InDelta(t, 2.5, l.RemainingTime(), 1e-9)

	// 最后一个相位结束后保持
	l.Update(10)
	assert.Equal(t, trafficlight.StateRed, l.State())
	assert.Equal(t, 0.0, l.RemainingTime())
}

func TestInvalidPhases(t *testing.T) {
	_, err := trafficlight.New(nil)
	assert.Error(t, err)
	_, err = trafficlight.NewYellow(0)
	assert.Error(t, err)
	_, err = trafficlight.NewYellow(math.NaN())
	assert.Error(t, err)
}

func TestStateText(t *testing.T) {
	text, err := trafficlight.StateYellow.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "yellow", string(text))
}

func TestStateUnmarshalText(t *testing.T) {
	var s trafficlight.State
	require.NoError(t, s.UnmarshalText([]byte("red")))
	assert.Equal(t, trafficlight.StateRed, s)
	assert.Error(t, s.UnmarshalText([]byte("blue")))
}
