package trafficlight

import (
	"fmt"
	"math"
)

// State 信号灯颜色
type State int

const (
	StateGreen State = iota
	StateYellow
	StateRed
)

var stateNames = map[State]string{
	StateGreen:  "green",
	StateYellow: "yellow",
	StateRed:    "red",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("trafficlight: unknown state %q", text)
}

// Phase 信号灯相位
type Phase struct {
	State    State
	Duration float64 // 持续时间（秒），math.Inf(1)表示保持
}

// Light 固定相位信号灯
// 功能：按照预设的相位顺序和时长切换，由外部时钟的dt驱动
// 说明：最后一个相位结束后停留在最后一个相位，不循环
type Light struct {
	phases []Phase

	step       int     // 当前相位索引
	remainingT float64 // 当前相位剩余时间
}

// New 创建信号灯
// 参数：phases-相位列表，不能为空，时长必须为正
func New(phases []Phase) (*Light, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("set with empty traffic light")
	}
	for i, p := range phases {
		if !(p.Duration > 0) {
			return nil, fmt.Errorf("phase %d has invalid duration %v", i, p.Duration)
		}
	}
	l := &Light{phases: phases}
	l.Reset()
	return l, nil
}

// NewYellow 黄灯持续yellowT秒后转为红灯
func NewYellow(yellowT float64) (*Light, error) {
	return New([]Phase{
		{State: StateYellow, Duration: yellowT},
		{State: StateRed, Duration: math.Inf(1)},
	})
}

// Reset 回到第一个相位
func (l *Light) Reset() {
	l.step = 0
	l.remainingT = l.phases[0].Duration
}

// Update 推进dt秒
// 算法说明：
// 1. 扣除当前相位剩余时间
// 2. 剩余时间耗尽则切换到下一相位，溢出的时间计入下一相位
// 3. 到达最后一个相位后保持
func (l *Light) Update(dt float64) {
	l.remainingT -= dt
	for l.remainingT <= 0 && l.step < len(l.phases)-1 {
		l.step++
		l.remainingT += l.phases[l.step].Duration
	}
	if l.remainingT < 0 {
		l.remainingT = 0
	}
}

// State 当前颜色
func (l *Light) State() State {
	return l.phases[l.step].State
}

// Step 当前相位索引
func (l *Light) Step() int {
	return l.step
}

// RemainingTime 当前相位剩余时间
func (l *Light) RemainingTime() float64 {
	return l.remainingT
}
