package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/config"
)

// Clock 仿真时钟
// 功能：记录决策后经过的仿真时间，由调用方按实际帧间隔推进
// 说明：引擎本身不持有时间，时钟属于会话层；重置后时间回到0
type Clock struct {
	DT       float64 // 无界面模式下每步的时间间隔（秒）
	END_STEP int32   // 最大步数，0表示不限制

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:       stepConfig.Interval,
		END_STEP: stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 重置时钟
func (c *Clock) Init() {
	c.InternalStep = 0
	c.T = 0
}

// Advance 推进dt秒
// 参数：dt-本帧经过的时间，负值视为0
// 返回：推进后的时间
func (c *Clock) Advance(dt float64) float64 {
	if dt > 0 {
		c.T += dt
	}
	c.InternalStep++
	return c.T
}

// Step 按固定步长DT推进一步
func (c *Clock) Step() float64 {
	return c.Advance(c.DT)
}

// Exhausted 是否已达到最大步数
func (c *Clock) Exhausted() bool {
	return c.END_STEP > 0 && c.InternalStep >= c.END_STEP
}

// String 获取时钟的字符串表示（MM:SS.ss）
func (c *Clock) String() string {
	minute, second := c.GetMinuteSecond()
	return fmt.Sprintf("%02d:%05.2f", minute, second)
}

// GetMinuteSecond 将当前时间分解为分钟和秒
func (c *Clock) GetMinuteSecond() (int, float64) {
	minute := int(c.T) / 60
	second := c.T - float64(minute*60)
	return minute, second
}
