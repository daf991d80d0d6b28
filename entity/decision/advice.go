package decision

import (
	"fmt"
	"math"
)

// IdleHeadline 决策前显示的提示
const IdleHeadline = "The best decision is to ..."

// Advice 面向学员的文字建议
type Advice struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail,omitempty"`
}

// Recommend 根据决策结果生成文字建议
func Recommend(d Decision) Advice {
	switch d.Outcome {
	case OutcomeAccelerate:
		a := Advice{
			Headline: "Accelerate !",
			Detail: fmt.Sprintf(
				"accelerating covers %.2f m within the reaction time, clearing the intersection by %.2f m",
				d.Sa, -d.ClearShortfall,
			),
		}
		if d.DecelerateFeasible {
			a.Detail += "; stopping before the intersection is also feasible"
		}
		return a
	case OutcomeDecelerate:
		return Advice{
			Headline: "Decelerate !",
			Detail: fmt.Sprintf(
				"braking stops the car after %.2f s and %.2f m, %.2f m before the stop line",
				d.StopTime, d.StopDistance, d.StopMargin,
			),
		}
	case OutcomeAccelerateUncertain:
		// 越线距离按实际停车点计算：Td晚于停车时刻时sd已越过抛物线顶点
		return Advice{
			Headline: "Accelerate, Ooops !",
			Detail: fmt.Sprintf(
				"neither maneuver is safe: %.2f m short of clearing the intersection, %.2f m past the stop line when braking",
				d.ClearShortfall, math.Max(0, -d.StopMargin),
			),
		}
	}
	return Advice{Headline: IdleHeadline}
}
