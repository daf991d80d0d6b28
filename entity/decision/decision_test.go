package decision_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

func TestEvaluateDefaultScenario(t *testing.T) {
	// 20km/h，d0=7，L=7，Td=2，aa=1，ad=-3
	s := physics.Default()
	d, err := decision.Evaluate(s)
	require.NoError(t, err)

	assert.InDelta(t, 13.11, d.Sa, 0.01)
	assert.InDelta(t, 5.11, d.Sd, 0.01)
	assert.InDelta(t, -44.54, d.D, 0.01)
	assert.False(t, d.HasT)
	assert.False(t, d.AccelerateFeasible)
	assert.True(t, d.DecelerateFeasible)
	assert.Equal(t, decision.OutcomeDecelerate, d.Outcome)
	assert.InDelta(t, 1.85, d.StopTime, 0.01)
	assert.InDelta(t, 5.14, d.StopDistance, 0.01)
	assert.InDelta(t, 1.86, d.StopMargin, 0.01)
}

func TestEvaluateAccelerate(t *testing.T) {
	s := physics.Default()
	s.V0 = physics.KmhToMs(80)
	d, err := decision.Evaluate(s)
	require.NoError(t, err)
	assert.Equal(t, decision.OutcomeAccelerate, d.Outcome)
	assert.GreaterOrEqual(t, d.Sa, s.L+s.D0)
	assert.LessOrEqual(t, d.ClearShortfall, 0.0)
}

func TestEvaluateAccelerateUncertain(t *testing.T) {
	s := physics.PhysicsState{V0: physics.KmhToMs(30), D0: 7, L: 50, Td: 2, Aa: 1, Ad: -1}
	d, err := decision.Evaluate(s)
	require.NoError(t, err)
	assert.Equal(t, decision.OutcomeAccelerateUncertain, d.Outcome)
	assert.False(t, d.AccelerateFeasible)
	assert.False(t, d.DecelerateFeasible)
	assert.Greater(t, d.ClearShortfall, 0.0)
	assert.Greater(t, d.StopOverrun, 0.0)
}

func TestEvaluateReachesEdgeWhileMoving(t *testing.T) {
	// 判别式为正：减速仍会在速度为正时到达路口边缘
	s := physics.PhysicsState{V0: 10, D0: 7, L: 40, Td: 2, Aa: 1, Ad: -3}
	d, err := decision.Evaluate(s)
	require.NoError(t, err)
	require.True(t, d.HasT)
	assert.InDelta(t, 232.0, d.D, 1e-9)
	assert.InDelta(t, (-20+math.Sqrt(232))/-6, d.T, 1e-9)
	// t时刻恰好行驶d0
	assert.InDelta(t, s.D0, s.V0*d.T+s.Ad*d.T*d.T/2, 1e-9)
	assert.Greater(t, s.V0+s.Ad*d.T, 0.0)
	assert.Equal(t, decision.OutcomeAccelerateUncertain, d.Outcome)
}

func TestEvaluateIdempotent(t *testing.T) {
	s := physics.PhysicsState{V0: 12, D0: 20, L: 15, Td: 3, Aa: 2, Ad: -2}
	d1, err := decision.Evaluate(s)
	require.NoError(t, err)
	d2, err := decision.Evaluate(s)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestEvaluateDomainError(t *testing.T) {
	cases := map[string]physics.PhysicsState{
		"zero deceleration":     physics.Default().With(physics.FieldAd, 0),
		"zero acceleration":     physics.Default().With(physics.FieldAa, 0),
		"positive deceleration": physics.Default().With(physics.FieldAd, 2),
		"nan speed":             physics.Default().With(physics.FieldV0, math.NaN()),
		"infinite width":        physics.Default().With(physics.FieldL, math.Inf(1)),
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decision.Evaluate(s)
			require.Error(t, err)
			var de *decision.DomainError
			assert.True(t, errors.As(err, &de))

			_, err = decision.PositionAt(s, decision.OutcomeDecelerate, 1)
			assert.True(t, errors.As(err, &de))
		})
	}
}

// 在输入范围的网格上检查三条规则
func TestEvaluateRuleSweep(t *testing.T) {
	counts := map[decision.Outcome]int{}
	for kmh := 20.0; kmh <= 80; kmh += 10 {
		for d0 := 7.0; d0 <= 50; d0 += 8.6 {
			for l := 7.0; l <= 50; l += 8.6 {
				for td := 2.0; td <= 4; td += 0.5 {
					for aa := 1.0; aa <= 3; aa += 1 {
						for ad := -3.0; ad <= -1; ad += 1 {
							s := physics.PhysicsState{V0: physics.KmhToMs(kmh), D0: d0, L: l, Td: td, Aa: aa, Ad: ad}
							d, err := decision.Evaluate(s)
							require.NoError(t, err)
							counts[d.Outcome]++

							sa := s.V0*s.Td + s.Aa*s.Td*s.Td/2
							sd := s.V0*s.Td + s.Ad*s.Td*s.Td/2
							stopDist := s.V0 * s.V0 / (-2 * s.Ad)
							if math.Abs(stopDist-s.D0) < 1e-6 {
								continue
							}
							switch {
							case sa >= s.L+s.D0:
								assert.Equal(t, decision.OutcomeAccelerate, d.Outcome, "%+v", s)
							case sd <= s.D0 && stopDist < s.D0:
								assert.Equal(t, decision.OutcomeDecelerate, d.Outcome, "%+v", s)
							default:
								assert.Equal(t, decision.OutcomeAccelerateUncertain, d.Outcome, "%+v", s)
							}
						}
					}
				}
			}
		}
	}
	assert.NotZero(t, counts[decision.OutcomeAccelerate])
	assert.NotZero(t, counts[decision.OutcomeDecelerate])
	assert.NotZero(t, counts[decision.OutcomeAccelerateUncertain])
}

func TestOutcomeText(t *testing.T) {
	for _, o := range []decision.Outcome{
		decision.OutcomeNone, decision.OutcomeAccelerate,
		decision.OutcomeDecelerate, decision.OutcomeAccelerateUncertain,
	} {
		text, err := o.MarshalText()
		require.NoError(t, err)
		var back decision.Outcome
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, o, back)
	}
	var o decision.Outcome
	assert.Error(t, o.UnmarshalText([]byte("brake")))
	assert.True(t, decision.OutcomeAccelerateUncertain.Accelerates())
	assert.False(t, decision.OutcomeDecelerate.Accelerates())
}

func TestRecommend(t *testing.T) {
	d, err := decision.Evaluate(physics.Default())
	require.NoError(t, err)
	assert.Equal(t, "Decelerate !", decision.Recommend(d).Headline)

	s := physics.Default()
	s.V0 = physics.KmhToMs(80)
	d, err = decision.Evaluate(s)
	require.NoError(t, err)
	a := decision.Recommend(d)
	assert.Equal(t, "Accelerate !", a.Headline)
	assert.NotContains(t, a.Detail, "also feasible")

	// 速度低、路口窄：两种操作都可行
	s = physics.PhysicsState{V0: physics.KmhToMs(20), D0: 7, L: 7, Td: 4, Aa: 3, Ad: -3}
	d, err = decision.Evaluate(s)
	require.NoError(t, err)
	require.Equal(t, decision.OutcomeAccelerate, d.Outcome)
	require.True(t, d.DecelerateFeasible)
	assert.Contains(t, decision.Recommend(d).Detail, "also feasible")

	s = physics.PhysicsState{V0: physics.KmhToMs(30), D0: 7, L: 50, Td: 2, Aa: 1, Ad: -1}
	d, err = decision.Evaluate(s)
	require.NoError(t, err)
	assert.Equal(t, "Accelerate, Ooops !", decision.Recommend(d).Headline)

	assert.Equal(t, decision.IdleHeadline, decision.Recommend(decision.Decision{}).Headline)
}

func TestRecommendUncertainUsesStoppingPoint(t *testing.T) {
	// Td晚于停车时刻(2.78s)，sd落在抛物线回落段，仍小于d0
	s := physics.PhysicsState{V0: physics.KmhToMs(30), D0: 10, L: 50, Td: 4, Aa: 1, Ad: -3}
	d, err := decision.Evaluate(s)
	require.NoError(t, err)
	require.Equal(t, decision.OutcomeAccelerateUncertain, d.Outcome)
	require.Less(t, d.Sd, s.D0)
	assert.InDelta(t, -1.574, d.StopMargin, 1e-3)

	a := decision.Recommend(d)
	assert.Equal(t, "Accelerate, Ooops !", a.Headline)
	assert.Contains(t, a.Detail, "18.67 m short of clearing the intersection")
	assert.Contains(t, a.Detail, "1.57 m past the stop line when braking")
	assert.NotContains(t, a.Detail, "-0.67")
}
