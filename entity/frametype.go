package entity

import (
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/trafficlight"
)

// Phase 会话阶段
type Phase string

const (
	PhaseIdle       Phase = "idle"       // 可编辑，尚未决策
	PhaseEvaluating Phase = "evaluating" // 正在决策
	PhaseAnimating  Phase = "animating"  // 按帧采样轨迹
)

// Vec3 渲染坐标
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ActorPose 渲染层中一个逻辑对象的位置与缩放
type ActorPose struct {
	Position Vec3 `json:"position"`
	Scale    Vec3 `json:"scale"`
	Visible  bool `json:"visible"`
}

// Light 信号灯状态
type Light struct {
	State         trafficlight.State `json:"state"`
	RemainingTime float64            `json:"remaining_time"` // <0表示保持不变
}

// Frame 单帧的渲染数据
// 说明：由会话层产生，渲染层只负责把数值放到场景对象上
type Frame struct {
	Phase   Phase                        `json:"phase"`
	T       float64                      `json:"t"`       // 决策后经过的仿真时间
	Horizon float64                      `json:"horizon"` // 动画时长上限
	Done    bool                         `json:"done"`    // 动画已结束
	Outcome decision.Outcome             `json:"outcome"`
	Advice  decision.Advice              `json:"advice"`
	Actors  map[decision.Actor]ActorPose `json:"actors"`
	Markers map[string]Vec3              `json:"markers"` // 停车线等辅助标记
	Camera  Vec3                         `json:"camera"`
	Light   Light                        `json:"light"`
	Values  map[string]float64           `json:"values"` // 当前输入框的值（界面单位）
}
