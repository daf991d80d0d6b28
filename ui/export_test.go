package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsgAt 测试中构造指定时刻的帧消息
func TickMsgAt(t time.Time) tea.Msg { return tickMsg(t) }
