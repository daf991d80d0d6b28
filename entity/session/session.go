// Package session 教学会话
// 功能：持有场景参数与会话阶段，在"开始"时调用决策引擎，之后按帧采样轨迹
// 说明：会话阶段 Idle -> Evaluating -> Animating -> (Reset) -> Idle；
// 引擎本身无状态，时间由会话所属的仿真时钟记录
package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/trafficlight"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/randengine"
)

var (
	ErrNotIdle      = errors.New("session: not idle")
	ErrNotEvaluated = errors.New("session: no decision has been made")
	ErrInvalidValue = errors.New("session: invalid value")
)

// randomStep 随机场景各字段的取整步长（界面单位）
var randomStep = map[physics.Field]float64{
	physics.FieldV0: 1,
	physics.FieldD0: 0.5,
	physics.FieldL:  0.5,
	physics.FieldTd: 0.1,
	physics.FieldAa: 0.1,
	physics.FieldAd: 0.1,
}

// Session 单个教学会话（非线程安全，并发访问请使用Manager）
type Session struct {
	ctx entity.ITaskContext

	state    physics.PhysicsState
	phase    entity.Phase
	decision decision.Decision
	light    *trafficlight.Light
	horizon  float64
}

// New 创建会话
// 功能：以配置中的场景参数初始化，超出范围的值被钳制
// 参数：ctx-任务上下文，提供时钟与运行时配置
func New(ctx entity.ITaskContext) *Session {
	s := &Session{
		ctx:   ctx,
		state: physics.Default(),
		phase: entity.PhaseIdle,
	}
	values := ctx.RuntimeConfig().All.Scenario.Values()
	for _, f := range physics.Fields {
		if _, err := s.Set(f, values[f]); err != nil {
			log.Warnf("scenario %v=%v ignored: %v", f, values[f], err)
		}
	}
	ctx.Clock().Init()
	return s
}

// Phase 当前会话阶段
func (s *Session) Phase() entity.Phase {
	return s.phase
}

// State 当前场景参数（引擎单位）
func (s *Session) State() physics.PhysicsState {
	return s.state
}

// Get 读取字段值（界面单位）
func (s *Session) Get(f physics.Field) float64 {
	return f.ToDisplay(s.state.Get(f))
}

// Decision 当前决策，未决策时ok为false
func (s *Session) Decision() (d decision.Decision, ok bool) {
	return s.decision, s.decision.Outcome != decision.OutcomeNone
}

// Set 修改场景参数
// 功能：模拟输入框编辑结束：把界面单位的值钳制到范围内后写入场景
// 参数：f-字段，value-界面单位的值（v0为km/h）
// 返回：实际写入的值（界面单位）；非Idle阶段返回ErrNotIdle
func (s *Session) Set(f physics.Field, value float64) (float64, error) {
	if s.phase != entity.PhaseIdle {
		return 0, fmt.Errorf("set %v: %w", f, ErrNotIdle)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("set %v=%v: %w", f, value, ErrInvalidValue)
	}
	if !lo.Contains(physics.Fields, f) {
		return 0, fmt.Errorf("set %v: %w", f, ErrInvalidValue)
	}
	applied, clamped := s.ctx.RuntimeConfig().Clamp(f, value)
	if clamped {
		log.Warnf("%v=%v out of bounds, clamped to %v", f, value, applied)
	} else {
		log.Debugf("%v=%v", f, applied)
	}
	s.state = s.state.With(f, f.FromDisplay(applied))
	return applied, nil
}

// Randomize 在输入范围内随机生成一个练习场景
// 说明：随机数引擎可以被多个调用方共用
func (s *Session) Randomize(e *randengine.Engine) error {
	if s.phase != entity.PhaseIdle {
		return fmt.Errorf("randomize: %w", ErrNotIdle)
	}
	for _, f := range physics.Fields {
		r := s.ctx.RuntimeConfig().Bounds[f]
		v := randengine.Round(e.UniformSafe(r.Min, r.Max), randomStep[f])
		if _, err := s.Set(f, v); err != nil {
			return err
		}
	}
	log.Infof("random scenario: %+v", s.state)
	return nil
}

// Start 开始
// 功能：决策一次并进入动画阶段
// 算法说明：
// 1. 仅在Idle阶段有效
// 2. 进入Evaluating阶段，调用决策引擎
// 3. 决策失败（输入超出定义域）时回到Idle并返回错误
// 4. 重置时钟与信号灯，计算动画时长上限，进入Animating阶段
func (s *Session) Start() (decision.Decision, error) {
	if s.phase != entity.PhaseIdle {
		return decision.Decision{}, fmt.Errorf("start: %w", ErrNotIdle)
	}
	s.phase = entity.PhaseEvaluating
	d, err := decision.Evaluate(s.state)
	if err != nil {
		s.phase = entity.PhaseIdle
		return decision.Decision{}, fmt.Errorf("start: %w", err)
	}
	light, err := trafficlight.NewYellow(s.state.Td)
	if err != nil {
		s.phase = entity.PhaseIdle
		return decision.Decision{}, fmt.Errorf("start: %w", err)
	}
	s.decision = d
	s.light = light
	s.horizon = s.state.Horizon(s.ctx.RuntimeConfig().C.RunoffDivisor)
	s.ctx.Clock().Init()
	s.phase = entity.PhaseAnimating
	log.Infof(
		"start: outcome=%v sa=%.3f sd=%.3f D=%.3f horizon=%.3fs",
		d.Outcome, d.Sa, d.Sd, d.D, s.horizon,
	)
	return d, nil
}

// Tick 推进dt秒并返回新的一帧
// 说明：只在Animating阶段推进；时间不超过动画时长上限
func (s *Session) Tick(dt float64) entity.Frame {
	if s.phase == entity.PhaseAnimating && !s.done() && dt > 0 {
		clk := s.ctx.Clock()
		step := dt
		if remain := s.horizon - clk.T; step >= remain {
			step = remain
			clk.Advance(step)
			clk.T = s.horizon
		} else {
			clk.Advance(step)
		}
		s.light.Update(step)
		if s.done() {
			log.Infof("animation complete at t=%.3fs", clk.T)
		}
	}
	return s.Frame()
}

// Reset 停止动画并回到编辑阶段
// 说明：时间回到0，决策被清除，之后的决策与之前的动画无关
func (s *Session) Reset() {
	if s.phase != entity.PhaseIdle {
		log.Infof("reset from %v", s.phase)
	}
	s.phase = entity.PhaseIdle
	s.decision = decision.Decision{}
	s.light = nil
	s.horizon = 0
	s.ctx.Clock().Init()
}

// PositionAt 当前决策下t时刻各车辆的位置
func (s *Session) PositionAt(t float64) (decision.Positions, error) {
	if _, ok := s.Decision(); !ok {
		return nil, ErrNotEvaluated
	}
	return decision.PositionAt(s.state, s.decision.Outcome, t)
}

// Trajectory 当前决策下某辆车的完整轨迹
func (s *Session) Trajectory(actor decision.Actor, dt float64) ([]decision.Sample, error) {
	if _, ok := s.Decision(); !ok {
		return nil, ErrNotEvaluated
	}
	return decision.Trajectory(s.state, actor, s.horizon, dt)
}

func (s *Session) done() bool {
	return s.ctx.Clock().T >= s.horizon
}

// Frame 当前帧
// 算法说明：
// 1. Idle阶段：三辆车都位于初始位置，信号灯为黄灯，显示默认提示
// 2. Animating阶段：按决策结果显示加速车或减速车，参考车始终显示
func (s *Session) Frame() entity.Frame {
	t := s.ctx.Clock().T
	f := entity.Frame{
		Phase:   s.phase,
		T:       t,
		Outcome: s.decision.Outcome,
		Advice:  decision.Recommend(s.decision),
		Actors: map[decision.Actor]entity.ActorPose{
			decision.ActorIntersectionLines: intersectionPose(s.state),
		},
		Markers: markers(s.state),
		Camera:  camera(s.state),
		Light:   entity.Light{State: trafficlight.StateYellow, RemainingTime: s.state.Td},
		Values:  make(map[string]float64, len(physics.Fields)),
	}
	for _, field := range physics.Fields {
		f.Values[field.String()] = s.Get(field)
	}

	cars := []decision.Actor{
		decision.ActorAcceleratingCar, decision.ActorDeceleratingCar, decision.ActorReferenceCar,
	}
	if s.phase != entity.PhaseAnimating {
		for _, actor := range cars {
			f.Actors[actor] = carPose(s.state, actor, s.state.InitPos(), true)
		}
		return f
	}

	f.Horizon = s.horizon
	f.Done = s.done()
	f.Light.State = s.light.State()
	f.Light.RemainingTime = s.light.RemainingTime()
	if math.IsInf(f.Light.RemainingTime, 1) {
		f.Light.RemainingTime = -1
	}
	positions, err := decision.PositionAt(s.state, s.decision.Outcome, t)
	if err != nil {
		// Start已经检查过定义域
		log.Errorf("frame at t=%v: %v", t, err)
		return f
	}
	for _, actor := range cars {
		x, ok := positions[actor]
		if !ok {
			x = s.state.InitPos()
		}
		f.Actors[actor] = carPose(s.state, actor, x, ok)
	}
	return f
}
