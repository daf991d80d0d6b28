package entity

import (
	"net/http"
	"sync"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/randengine"
)

// Manager依赖倒置

// entity/session/manager.go的依赖倒置
type ISessionManager interface {
	Register(mux *http.ServeMux) // 注册RPC服务
	Locker() sync.Locker         // 与会话共用的锁

	// 读取字段值（界面单位）
	Get(f physics.Field) float64
	// 当前会话阶段
	Phase() Phase
	// 在输入范围内随机生成练习场景
	Randomize(e *randengine.Engine) error
	// 当前决策下某辆车的完整轨迹
	Trajectory(actor decision.Actor, dt float64) ([]decision.Sample, error)

	// 修改场景参数（界面单位），返回钳制后的值
	Set(f physics.Field, value float64) (float64, error)
	// 开始：决策并进入动画阶段
	Start() (decision.Decision, error)
	// 停止并回到编辑阶段
	Reset()
	// 推进dt秒，返回推进后的帧
	Tick(dt float64) Frame
	// 当前帧
	Frame() Frame
}
