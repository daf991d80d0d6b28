package config

import (
	"fmt"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"gopkg.in/yaml.v2"
)

// Default 默认配置：与教学界面一致的默认场景与输入范围
func Default() Config {
	return Config{
		Scenario: Scenario{V0: 20, D0: 7, L: 7, Td: 2, Aa: 1, Ad: -3},
		Bounds: Bounds{
			V0: Range{Min: 20, Max: 80},
			D0: Range{Min: 7, Max: 50},
			L:  Range{Min: 7, Max: 50},
			Td: Range{Min: 2, Max: 4},
			Aa: Range{Min: 1, Max: 3},
			Ad: Range{Min: -3, Max: -1},
		},
		Control: Control{
			Step:          ControlStep{Interval: 0.02},
			RunoffDivisor: physics.DefaultRunoffDivisor,
		},
		Server: Server{Listen: ":51102"},
	}
}

// Parse 解析YAML配置
// 功能：在默认配置的基础上覆盖文件中给出的字段，并做合法性检查
// 说明：使用UnmarshalStrict，未知字段视为错误
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config parse err: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate 检查配置的合法性
// 算法说明：
// 1. 每个范围必须满足 min <= max
// 2. 加速度范围必须严格为正，减速度范围必须严格为负（决策引擎要求 ad < 0 < aa）
// 3. 时间步长与收尾窗口系数必须为正
func (c Config) Validate() error {
	for f, r := range c.Bounds.byField() {
		if r.Min > r.Max {
			return fmt.Errorf("bounds.%v: min %v > max %v", f, r.Min, r.Max)
		}
	}
	if c.Bounds.Aa.Min <= 0 {
		return fmt.Errorf("bounds.aa: range [%v, %v] must be positive", c.Bounds.Aa.Min, c.Bounds.Aa.Max)
	}
	if c.Bounds.Ad.Max >= 0 {
		return fmt.Errorf("bounds.ad: range [%v, %v] must be negative", c.Bounds.Ad.Min, c.Bounds.Ad.Max)
	}
	if c.Bounds.V0.Min < 0 || c.Bounds.D0.Min < 0 || c.Bounds.L.Min < 0 || c.Bounds.Td.Min < 0 {
		return fmt.Errorf("bounds: v0, d0, l and td must not be negative")
	}
	if c.Control.Step.Interval <= 0 {
		return fmt.Errorf("control.step.interval must be positive, got %v", c.Control.Step.Interval)
	}
	if c.Control.RunoffDivisor <= 0 {
		return fmt.Errorf("control.runoff_divisor must be positive, got %v", c.Control.RunoffDivisor)
	}
	return nil
}

func (b Bounds) byField() map[physics.Field]Range {
	return map[physics.Field]Range{
		physics.FieldV0: b.V0,
		physics.FieldD0: b.D0,
		physics.FieldL:  b.L,
		physics.FieldTd: b.Td,
		physics.FieldAa: b.Aa,
		physics.FieldAd: b.Ad,
	}
}

// Values 场景参数按字段索引（界面单位）
func (s Scenario) Values() map[physics.Field]float64 {
	return map[physics.Field]float64{
		physics.FieldV0: s.V0,
		physics.FieldD0: s.D0,
		physics.FieldL:  s.L,
		physics.FieldTd: s.Td,
		physics.FieldAa: s.Aa,
		physics.FieldAd: s.Ad,
	}
}
