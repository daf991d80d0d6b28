// Package decision 黄灯决策引擎
// 功能：根据场景参数判断加速通过或减速停车的可行性，并给出随时间变化的位置轨迹
// 说明：所有函数都是纯函数，不持有动画状态，可反复调用
package decision

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

// Outcome 决策结果
type Outcome int

const (
	OutcomeNone                Outcome = iota // 尚未决策
	OutcomeAccelerate                         // 可以在反应时间内加速通过路口
	OutcomeDecelerate                         // 可以在路口边缘前刹停
	OutcomeAccelerateUncertain                // 两种操作都无法保证安全，退化为加速
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:                "none",
	OutcomeAccelerate:          "accelerate",
	OutcomeDecelerate:          "decelerate",
	OutcomeAccelerateUncertain: "accelerate_uncertain",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Accelerates 该结果下车辆是否执行加速轨迹
func (o Outcome) Accelerates() bool {
	return o == OutcomeAccelerate || o == OutcomeAccelerateUncertain
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for k, v := range outcomeNames {
		if v == string(text) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(text))
}

// Decision 一次决策的结果与诊断数值
type Decision struct {
	Outcome Outcome `json:"outcome"`

	Sa float64 `json:"sa"` // 反应时间内加速行驶的距离
	Sd float64 `json:"sd"` // 反应时间内减速行驶的距离
	D  float64 `json:"d"`  // 减速到达路口边缘方程的判别式
	// T 以减速度行驶到达路口边缘的时间，仅当D>=0时有效
	T    float64 `json:"t"`
	HasT bool    `json:"has_t"`

	AccelerateFeasible bool    `json:"accelerate_feasible"`
	DecelerateFeasible bool    `json:"decelerate_feasible"`
	ClearShortfall     float64 `json:"clear_shortfall"` // L+d0-sa，>0表示加速无法驶离路口
	StopOverrun        float64 `json:"stop_overrun"`    // sd-d0，>0表示减速会越过停车线
	StopTime           float64 `json:"stop_time"`       // 减速至速度为0的时间 -v0/ad
	StopDistance       float64 `json:"stop_distance"`   // 减速至速度为0行驶的距离 v0²/(-2·ad)
	StopMargin         float64 `json:"stop_margin"`     // d0-StopDistance，停车点到路口边缘的余量
}

// Evaluate 决策
// 功能：用匀加速运动学计算加速/减速两种方案，按顺序选择第一个成立的规则
// 参数：s-场景参数
// 返回：决策结果；aa<=0、ad>=0或存在非有限值时返回*DomainError
// 算法说明：
// 1. sa = v0·Td + aa·Td²/2，sd = v0·Td + ad·Td²/2
// 2. D = 4·v0² + 8·ad·d0，若D>=0则 t = (-2·v0 + √D) / (2·ad)
// 3. sa >= L+d0 -> 加速
// 4. sd <= d0 且 (D<0 或 v0+ad·t <= 0) -> 减速
// 5. 否则 -> 加速（不确定）
func Evaluate(s physics.PhysicsState) (Decision, error) {
	if err := checkDomain(s); err != nil {
		return Decision{}, err
	}

	td2 := s.Td * s.Td
	d := Decision{
		Sa:       s.V0*s.Td + s.Aa*td2/2,
		Sd:       s.V0*s.Td + s.Ad*td2/2,
		D:        4*s.V0*s.V0 + 8*s.Ad*s.D0,
		StopTime: stopTime(s),
	}
	d.StopDistance = s.V0 * d.StopTime / 2
	d.StopMargin = s.D0 - d.StopDistance
	if d.D >= 0 {
		d.T = (-2*s.V0 + math.Sqrt(d.D)) / (2 * s.Ad)
		d.HasT = true
	}
	d.ClearShortfall = s.L + s.D0 - d.Sa
	d.StopOverrun = d.Sd - s.D0

	d.AccelerateFeasible = d.Sa >= s.L+s.D0
	// D<0：减速过程中永远到不了路口边缘；否则到达时速度已不为正
	d.DecelerateFeasible = d.Sd <= s.D0 && (!d.HasT || s.V0+s.Ad*d.T <= 0)

	switch {
	case d.AccelerateFeasible:
		d.Outcome = OutcomeAccelerate
	case d.DecelerateFeasible:
		d.Outcome = OutcomeDecelerate
	default:
		d.Outcome = OutcomeAccelerateUncertain
	}
	return d, nil
}

// stopTime 减速至静止所需时间（ad<0已由checkDomain保证）
func stopTime(s physics.PhysicsState) float64 {
	return -s.V0 / s.Ad
}
