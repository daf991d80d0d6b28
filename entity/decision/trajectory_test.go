package decision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

func TestPositionAtActors(t *testing.T) {
	s := physics.Default()

	p, err := decision.PositionAt(s, decision.OutcomeDecelerate, 0)
	require.NoError(t, err)
	assert.Len(t, p, 2)
	assert.Equal(t, s.InitPos(), p[decision.ActorDeceleratingCar])
	assert.Equal(t, s.InitPos(), p[decision.ActorReferenceCar])
	_, ok := p[decision.ActorAcceleratingCar]
	assert.False(t, ok)

	for _, o := range []decision.Outcome{decision.OutcomeAccelerate, decision.OutcomeAccelerateUncertain} {
		p, err = decision.PositionAt(s, o, 1)
		require.NoError(t, err)
		assert.Contains(t, p, decision.ActorAcceleratingCar)
		assert.NotContains(t, p, decision.ActorDeceleratingCar)
	}

	p, err = decision.PositionAt(s, decision.OutcomeNone, 1)
	require.NoError(t, err)
	assert.Len(t, p, 1)
	assert.Contains(t, p, decision.ActorReferenceCar)
}

func TestAcceleratingMonotonic(t *testing.T) {
	s := physics.PhysicsState{V0: physics.KmhToMs(50), D0: 30, L: 20, Td: 3, Aa: 2, Ad: -2}
	horizon := s.Horizon(physics.DefaultRunoffDivisor)
	prev := decision.AcceleratingPosition(s, 0)
	assert.Equal(t, s.InitPos(), prev)
	for t0 := 0.05; t0 <= horizon; t0 += 0.05 {
		cur := decision.AcceleratingPosition(s, t0)
		assert.Less(t, cur, prev, "t=%v", t0)
		assert.InDelta(t, s.InitPos()-(s.V0*t0+s.Aa*t0*t0/2), cur, 1e-9)
		prev = cur
	}
}

func TestDeceleratingFreezes(t *testing.T) {
	s := physics.Default()
	stop := -s.V0 / s.Ad
	frozen := s.InitPos() - s.V0*s.V0/(-2*s.Ad)
	horizon := s.Horizon(physics.DefaultRunoffDivisor)
	require.Greater(t, horizon, stop)

	prev := decision.DeceleratingPosition(s, 0)
	for t0 := 0.01; t0 <= horizon; t0 += 0.01 {
		cur := decision.DeceleratingPosition(s, t0)
		assert.LessOrEqual(t, cur, prev, "t=%v", t0)
		if s.V0+s.Ad*t0 <= 0 {
			assert.InDelta(t, frozen, cur, 1e-9, "t=%v", t0)
		}
		prev = cur
	}
	// 远超停车时间也不倒退
	assert.InDelta(t, frozen, decision.DeceleratingPosition(s, 100), 1e-9)
	// 停车点在路口边缘之前
	assert.Greater(t, frozen, s.L/2)
}

func TestReferenceExact(t *testing.T) {
	s := physics.PhysicsState{V0: 17.3, D0: 12, L: 9, Td: 2.5, Aa: 1.5, Ad: -2.5}
	for _, t0 := range []float64{0, 0.1, 1, 2.5, 3.46, 5} {
		assert.Equal(t, s.InitPos()-s.V0*t0, decision.ReferencePosition(s, t0))
	}
	// 负时间按0处理
	assert.Equal(t, s.InitPos(), decision.ReferencePosition(s, -1))
}

func TestTrajectory(t *testing.T) {
	s := physics.Default()
	horizon := s.Horizon(physics.DefaultRunoffDivisor)

	samples, err := decision.Trajectory(s, decision.ActorDeceleratingCar, horizon, 0.25)
	require.NoError(t, err)
	require.NotEmpty(t, samples)
	assert.Equal(t, 0.0, samples[0].T)
	assert.Equal(t, horizon, samples[len(samples)-1].T)
	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i].T, samples[i-1].T)
		assert.LessOrEqual(t, samples[i].Position, samples[i-1].Position)
	}

	_, err = decision.Trajectory(s, decision.ActorReferenceCar, horizon, 0)
	assert.Error(t, err)
	_, err = decision.Trajectory(s, decision.ActorIntersectionLines, horizon, 0.1)
	assert.Error(t, err)

	samples, err = decision.Trajectory(s, decision.ActorReferenceCar, -1, 0.1)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}
