// 黄灯两难场景的物理参数
package physics

const (
	kmhPerMs = 3.6 // 1 m/s = 3.6 km/h

	// DefaultRunoffDivisor 动画收尾窗口系数，窗口长度为 v0/DefaultRunoffDivisor 秒
	DefaultRunoffDivisor = 5.0
)

// KmhToMs 速度单位换算 km/h -> m/s
func KmhToMs(kmh float64) float64 {
	return kmh / kmhPerMs
}

// MsToKmh 速度单位换算 m/s -> km/h
func MsToKmh(ms float64) float64 {
	return ms * kmhPerMs
}

// PhysicsState 场景的六个标量参数
// 功能：描述车辆接近黄灯路口时的初始条件与运动学限制
// 说明：值类型，可自由复制；范围检查由调用方负责，决策引擎信任输入
type PhysicsState struct {
	V0 float64 `json:"v0" yaml:"v0"` // 接近速度（米/秒）
	D0 float64 `json:"d0" yaml:"d0"` // 车辆到路口边缘的初始距离（米）
	L  float64 `json:"l" yaml:"l"`   // 路口宽度（米）
	Td float64 `json:"td" yaml:"td"` // 反应/决策时间（秒）
	Aa float64 `json:"aa" yaml:"aa"` // 加速度（米/秒²，正）
	Ad float64 `json:"ad" yaml:"ad"` // 减速度（米/秒²，负）
}

// Default 返回程序启动时的默认场景：20km/h、距路口7米、路口宽7米、反应时间2秒、加速度1、减速度-3
func Default() PhysicsState {
	return PhysicsState{
		V0: KmhToMs(20),
		D0: 7,
		L:  7,
		Td: 2,
		Aa: 1,
		Ad: -3,
	}
}

// InitPos 车辆在t=0时的位置（以路口中心为原点，沿接近方向为正）
func (s PhysicsState) InitPos() float64 {
	return s.L/2 + s.D0
}

// Horizon 动画时长上限：反应时间加上与初速度成正比的收尾窗口
// 参数：runoffDivisor-收尾窗口系数，<=0时使用DefaultRunoffDivisor
func (s PhysicsState) Horizon(runoffDivisor float64) float64 {
	if runoffDivisor <= 0 {
		runoffDivisor = DefaultRunoffDivisor
	}
	return s.Td + s.V0/runoffDivisor
}

// Get 读取指定字段的值（引擎单位，v0为米/秒）
func (s PhysicsState) Get(f Field) float64 {
	switch f {
	case FieldV0:
		return s.V0
	case FieldD0:
		return s.D0
	case FieldL:
		return s.L
	case FieldTd:
		return s.Td
	case FieldAa:
		return s.Aa
	case FieldAd:
		return s.Ad
	}
	return 0
}

// With 返回修改了指定字段后的副本（引擎单位）
func (s PhysicsState) With(f Field, v float64) PhysicsState {
	switch f {
	case FieldV0:
		s.V0 = v
	case FieldD0:
		s.D0 = v
	case FieldL:
		s.L = v
	case FieldTd:
		s.Td = v
	case FieldAa:
		s.Aa = v
	case FieldAd:
		s.Ad = v
	}
	return s
}
