// Package ui 终端交互界面
// 功能：编辑场景参数、开始决策并以字符动画显示三辆车的轨迹
package ui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/randengine"
)

const frameInterval = 16 * time.Millisecond

// 左右键微调的步长（界面单位）
var nudgeStep = map[physics.Field]float64{
	physics.FieldV0: 1,
	physics.FieldD0: 0.5,
	physics.FieldL:  0.5,
	physics.FieldTd: 0.1,
	physics.FieldAa: 0.1,
	physics.FieldAd: 0.1,
}

// Session 界面操作的会话，session.Manager实现了该接口
type Session interface {
	Set(f physics.Field, value float64) (float64, error)
	Get(f physics.Field) float64
	Start() (decision.Decision, error)
	Reset()
	Tick(dt float64) entity.Frame
	Frame() entity.Frame
	Randomize(e *randengine.Engine) error
}

// Model bubbletea界面模型
type Model struct {
	session Session
	rand    *randengine.Engine

	cursor  int
	editing bool
	editBuf string
	status  string

	frame    entity.Frame
	lastTick time.Time

	width int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// New 创建界面模型
// 参数：s-会话，rand-随机场景生成器（为nil时禁用随机场景）
func New(s Session, rand *randengine.Engine) Model {
	return Model{
		session: s,
		rand:    rand,
		frame:   s.Frame(),
		width:   72,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Frame 当前显示的帧
func (m Model) Frame() entity.Frame { return m.frame }

// Status 最近一次操作的提示
func (m Model) Status() string { return m.status }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if m.frame.Phase != entity.PhaseAnimating || m.frame.Done {
			return m, nil
		}
		now := time.Time(msg)
		dt := 0.0
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		m.frame = m.session.Tick(dt)
		if m.frame.Done {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}
	field := physics.Fields[m.cursor]
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(physics.Fields)-1 {
			m.cursor++
		}
	case "enter":
		if m.frame.Phase == entity.PhaseIdle {
			m.editing = true
			m.editBuf = strconv.FormatFloat(m.session.Get(field), 'f', 2, 64)
		}
	case "left", "h":
		m.set(field, m.session.Get(field)-nudgeStep[field])
	case "right", "l":
		m.set(field, m.session.Get(field)+nudgeStep[field])
	case " ", "s":
		if m.frame.Phase == entity.PhaseIdle {
			return m.start()
		}
		m.session.Reset()
		m.frame = m.session.Frame()
		m.status = ""
	case "r":
		if m.rand == nil {
			return m, nil
		}
		if err := m.session.Randomize(m.rand); err != nil {
			m.status = err.Error()
		} else {
			m.status = "random scenario"
		}
		m.frame = m.session.Frame()
	}
	return m, nil
}

// editKey 输入框编辑：回车提交，esc取消
func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		v, err := strconv.ParseFloat(m.editBuf, 64)
		m.editBuf = ""
		if err != nil {
			m.status = fmt.Sprintf("not a number: %v", err)
			return m, nil
		}
		m.set(physics.Fields[m.cursor], v)
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

func (m *Model) set(f physics.Field, v float64) {
	applied, err := m.session.Set(f, v)
	switch {
	case err != nil:
		m.status = err.Error()
	case applied != v:
		m.status = fmt.Sprintf("%v clamped to %v", f, applied)
	default:
		m.status = ""
	}
	m.frame = m.session.Frame()
}

func (m Model) start() (Model, tea.Cmd) {
	if _, err := m.session.Start(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	m.lastTick = time.Time{}
	m.frame = m.session.Frame()
	return m, tick()
}
