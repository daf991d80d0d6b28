package decision

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

// Actor 渲染层中的逻辑对象名
type Actor string

const (
	ActorAcceleratingCar   Actor = "acceleratingCar"
	ActorDeceleratingCar   Actor = "deceleratingCar"
	ActorReferenceCar      Actor = "referenceCar"
	ActorIntersectionLines Actor = "intersectionLines"
)

// Positions 某一时刻各车辆沿接近方向的位置
// 说明：只包含当前决策下可见的车辆；参考车始终存在
type Positions map[Actor]float64

// Sample 一个(时间, 位置)采样点
type Sample struct {
	T        float64 `json:"t"`
	Position float64 `json:"position"`
}

// AcceleratingPosition 加速车在t时刻的位置：initPos − (v0·t + aa·t²/2)
func AcceleratingPosition(s physics.PhysicsState, t float64) float64 {
	t = math.Max(t, 0)
	return s.InitPos() - (s.V0*t + s.Aa*t*t/2)
}

// DeceleratingPosition 减速车在t时刻的位置
// 说明：速度降到0后位置冻结，不会倒退
func DeceleratingPosition(s physics.PhysicsState, t float64) float64 {
	t = math.Max(t, 0)
	if s.Ad < 0 && s.V0+s.Ad*t <= 0 {
		t = stopTime(s)
	}
	return s.InitPos() - (s.V0*t + s.Ad*t*t/2)
}

// ReferencePosition 不做任何操作、保持匀速的参考车位置：initPos − v0·t
func ReferencePosition(s physics.PhysicsState, t float64) float64 {
	t = math.Max(t, 0)
	return s.InitPos() - s.V0*t
}

// PositionAt 决策后经过t秒各车辆的位置
// 功能：根据决策结果选择显示加速车或减速车，并附带参考车
// 参数：s-场景参数，outcome-决策结果，t-决策后经过的仿真时间（负值按0处理）
// 返回：各车辆位置；输入超出定义域时返回*DomainError
func PositionAt(s physics.PhysicsState, outcome Outcome, t float64) (Positions, error) {
	if err := checkDomain(s); err != nil {
		return nil, err
	}
	p := Positions{
		ActorReferenceCar: ReferencePosition(s, t),
	}
	switch {
	case outcome.Accelerates():
		p[ActorAcceleratingCar] = AcceleratingPosition(s, t)
	case outcome == OutcomeDecelerate:
		p[ActorDeceleratingCar] = DeceleratingPosition(s, t)
	}
	return p, nil
}

// Trajectory 以固定步长采样某辆车在[0, horizon]上的轨迹
// 参数：actor-车辆，horizon-采样终点（负值按0处理），dt-采样步长，必须为正
// 返回：采样点，末尾总是包含horizon时刻
func Trajectory(s physics.PhysicsState, actor Actor, horizon, dt float64) ([]Sample, error) {
	if err := checkDomain(s); err != nil {
		return nil, err
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("decision: sampling step %v must be positive", dt)
	}
	var pos func(physics.PhysicsState, float64) float64
	switch actor {
	case ActorAcceleratingCar:
		pos = AcceleratingPosition
	case ActorDeceleratingCar:
		pos = DeceleratingPosition
	case ActorReferenceCar:
		pos = ReferencePosition
	default:
		return nil, fmt.Errorf("decision: actor %q has no trajectory", actor)
	}
	horizon = math.Max(horizon, 0)
	n := int(math.Floor(horizon/dt)) + 1
	samples := make([]Sample, 0, n+1)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		samples = append(samples, Sample{T: t, Position: pos(s, t)})
	}
	if last := samples[len(samples)-1].T; last < horizon {
		samples = append(samples, Sample{T: horizon, Position: pos(s, horizon)})
	}
	return samples, nil
}
