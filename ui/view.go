package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/trafficlight"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	title  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
)

var fieldLabels = map[physics.Field]string{
	physics.FieldV0: "initial speed",
	physics.FieldD0: "distance to stop line",
	physics.FieldL:  "intersection width",
	physics.FieldTd: "reaction time",
	physics.FieldAa: "acceleration",
	physics.FieldAd: "deceleration",
}

// 字符动画中的车辆标记，按车道从上到下排列
var lanes = []struct {
	actor decision.Actor
	mark  rune
}{
	{decision.ActorAcceleratingCar, 'A'},
	{decision.ActorReferenceCar, 'R'},
	{decision.ActorDeceleratingCar, 'D'},
}

func outcomeStyle(o decision.Outcome) lipgloss.Style {
	switch o {
	case decision.OutcomeAccelerate:
		return green
	case decision.OutcomeDecelerate:
		return red
	case decision.OutcomeAccelerateUncertain:
		return yellow
	default:
		return white
	}
}

func lightStyle(s trafficlight.State) lipgloss.Style {
	switch s {
	case trafficlight.StateGreen:
		return green
	case trafficlight.StateYellow:
		return yellow
	default:
		return red
	}
}

func (m Model) View() string {
	var b strings.Builder
	f := m.frame

	b.WriteString(title.Render("yellow light dilemma") + "\n\n")
	for i, field := range physics.Fields {
		cursor := "  "
		if i == m.cursor {
			cursor = cyan.Render("> ")
		}
		value := fmt.Sprintf("%.2f", f.Values[field.String()])
		if m.editing && i == m.cursor {
			value = cyan.Render(m.editBuf + "_")
		}
		fmt.Fprintf(&b, "%s%-22s %s %s\n", cursor, fieldLabels[field], white.Render(value), dim.Render(field.Unit()))
	}
	b.WriteString("\n")

	b.WriteString(outcomeStyle(f.Outcome).Render(f.Advice.Headline) + "\n")
	if f.Advice.Detail != "" {
		b.WriteString(dim.Render(f.Advice.Detail) + "\n")
	}
	b.WriteString("\n")

	remaining := "hold"
	if f.Light.RemainingTime >= 0 {
		remaining = fmt.Sprintf("%.2fs", f.Light.RemainingTime)
	}
	fmt.Fprintf(
		&b, "t=%.2fs / %.2fs  light %s (%s)\n",
		f.T, f.Horizon, lightStyle(f.Light.State).Render(f.Light.State.String()), remaining,
	)
	for _, line := range strip(f, m.width-4) {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(yellow.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("↑/↓ select  ←/→ adjust  enter edit  space start/reset  r random  q quit") + "\n")
	return b.String()
}

// strip 接近方向的字符示意图
// 算法说明：
// 1. 水平方向从右到左依次为初始位置、停车线、路口、驶出后的区域
// 2. 路口用#表示，停车线用|表示
// 3. 每辆车单独一行，不可见的车不绘制
func strip(f entity.Frame, width int) []string {
	if width < 20 {
		width = 20
	}
	l := f.Values[physics.FieldL.String()]
	d0 := f.Values[physics.FieldD0.String()]
	xMax := l/2 + d0
	xMin := -l/2 - l
	if xMax <= xMin {
		return nil
	}
	column := func(x float64) int {
		c := int((xMax - x) / (xMax - xMin) * float64(width-1))
		return max(0, min(width-1, c))
	}

	road := make([]rune, width)
	for i := range road {
		road[i] = '.'
	}
	for c := column(l / 2); c <= column(-l/2); c++ {
		road[c] = '#'
	}
	road[column(l/2)] = '|'

	lines := make([]string, 0, len(lanes))
	for _, lane := range lanes {
		row := make([]rune, width)
		copy(row, road)
		if pose, ok := f.Actors[lane.actor]; ok && pose.Visible {
			row[column(pose.Position.X)] = lane.mark
		}
		lines = append(lines, string(row))
	}
	return lines
}
