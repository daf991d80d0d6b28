package config

// Range 输入框允许的取值范围（界面单位）
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Scenario 启动时的场景参数（界面单位，v0为km/h）
// 说明：超出Bounds的值在加载时被钳制到范围内
type Scenario struct {
	V0 float64 `yaml:"v0"` // 接近速度（km/h）
	D0 float64 `yaml:"d0"` // 到路口边缘的距离（米）
	L  float64 `yaml:"l"`  // 路口宽度（米）
	Td float64 `yaml:"td"` // 反应时间（秒）
	Aa float64 `yaml:"aa"` // 加速度（米/秒²）
	Ad float64 `yaml:"ad"` // 减速度（米/秒²，负）
}

// Bounds 六个输入框的取值范围
type Bounds struct {
	V0 Range `yaml:"v0"`
	D0 Range `yaml:"d0"`
	L  Range `yaml:"l"`
	Td Range `yaml:"td"`
	Aa Range `yaml:"aa"`
	Ad Range `yaml:"ad"`
}

// ControlStep 无界面模式的时间步配置
type ControlStep struct {
	Interval float64 `yaml:"interval"`        // 每步的时间间隔（秒）
	Total    int32   `yaml:"total,omitempty"` // 最大步数，0表示直到动画结束
}

// Control 模拟器控制配置
type Control struct {
	Step          ControlStep `yaml:"step"`
	RunoffDivisor float64     `yaml:"runoff_divisor,omitempty"` // 收尾窗口 v0/runoff_divisor 秒
	Random        bool        `yaml:"random,omitempty"`         // 启动时随机生成练习场景
	Seed          uint64      `yaml:"seed,omitempty"`           // 随机场景种子
}

// Server 服务模式配置
type Server struct {
	Listen string `yaml:"listen,omitempty"` // HTTP监听地址
}

// Config YAML配置文件的根结构
type Config struct {
	Scenario Scenario `yaml:"scenario"`
	Bounds   Bounds   `yaml:"bounds"`
	Control  Control  `yaml:"control"`
	Server   Server   `yaml:"server,omitempty"`
}
