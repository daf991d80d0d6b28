package session

import (
	"sync"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/randengine"
)

// Manager 会话管理器
// 功能：用互斥锁保护单个会话，供RPC、websocket与主循环并发访问
// 说明：同一时刻只有一个写入方，锁只用于串行化来自不同协程的调用
type Manager struct {
	mu      sync.Mutex
	ctx     entity.ITaskContext
	session *Session
}

var _ entity.ISessionManager = (*Manager)(nil)

// NewManager 创建会话管理器
func NewManager(ctx entity.ITaskContext) *Manager {
	return &Manager{
		ctx:     ctx,
		session: New(ctx),
	}
}

// Locker 与会话共用的锁，时钟RPC读取时间时使用
func (m *Manager) Locker() sync.Locker {
	return &m.mu
}

func (m *Manager) Set(f physics.Field, value float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Set(f, value)
}

func (m *Manager) Get(f physics.Field) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Get(f)
}

func (m *Manager) Start() (decision.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Start()
}

func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Reset()
}

func (m *Manager) Tick(dt float64) entity.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Tick(dt)
}

func (m *Manager) Frame() entity.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Frame()
}

func (m *Manager) Phase() entity.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Phase()
}

func (m *Manager) Randomize(e *randengine.Engine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Randomize(e)
}

func (m *Manager) Trajectory(actor decision.Actor, dt float64) ([]decision.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Trajectory(actor, dt)
}
