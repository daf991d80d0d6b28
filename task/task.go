package task

import (
	"sync/atomic"

	"github.com/tsinghua-fib-lab/yellowlight-sim/clock"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/session"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/config"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/randengine"
)

// Context 任务上下文
// 功能：包含一次运行的所有变量和状态，替代全局变量
// 说明：管理时钟、运行时配置、随机数引擎与会话管理器
type Context struct {
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock
	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
	// 随机场景生成器，启动、websocket指令与终端界面共用同一个随机序列
	rand *randengine.Engine

	// 会话管理器
	sessionManager entity.ISessionManager
}

var _ entity.ITaskContext = (*Context)(nil)

// NewContext 创建新的任务上下文
// 功能：根据配置初始化时钟与会话
// 参数：c-已校验的配置对象
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 创建时钟与运行时配置（会话创建时需要读取）
// 2. 创建会话管理器，场景参数来自配置并按范围钳制
// 3. 如果配置要求随机场景，用配置的种子生成一次
func NewContext(c config.Config) *Context {
	ctx := &Context{}
	ctx.clock = clock.New(c.Control.Step)
	ctx.runtimeConfig = config.NewRuntimeConfig(c)
	ctx.rand = randengine.New(c.Control.Seed)

	ctx.sessionManager = session.NewManager(ctx)
	if c.Control.Random {
		if err := ctx.sessionManager.Randomize(ctx.rand); err != nil {
			log.Errorf("random scenario: %v", err)
		}
	}
	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) SessionManager() entity.ISessionManager {
	return ctx.sessionManager
}

// Rand 本次运行共用的随机数引擎
func (ctx *Context) Rand() *randengine.Engine {
	return ctx.rand
}

// Close 标记任务结束，运行中的循环在下一步退出
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
