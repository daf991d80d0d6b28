package config

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

// RuntimeConfig 运行时配置
// 功能：将YAML配置转换为运行时可用的配置对象
// 说明：范围按字段索引，便于输入框钳制
type RuntimeConfig struct {
	All    Config                  // 全部配置
	C      Control                 // 全局控制配置
	Bounds map[physics.Field]Range // 输入范围（界面单位）
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 说明：收尾窗口系数未设置时使用默认值
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Control
	if rc.C.RunoffDivisor <= 0 {
		rc.C.RunoffDivisor = physics.DefaultRunoffDivisor
	}
	rc.Bounds = config.Bounds.byField()

	return rc
}

// Clamp 将界面单位的值钳制到字段的输入范围内
// 返回：钳制后的值，以及是否发生了钳制
func (rc *RuntimeConfig) Clamp(f physics.Field, v float64) (float64, bool) {
	r, ok := rc.Bounds[f]
	if !ok {
		return v, false
	}
	clamped := lo.Clamp(v, r.Min, r.Max)
	return clamped, clamped != v
}
