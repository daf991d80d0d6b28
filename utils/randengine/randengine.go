// 随机数引擎，包装了golang.org/x/exp/rand，用于生成练习场景
package randengine

import (
	"flag"
	"sync"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供可复现的随机数生成功能，支持线程安全操作
type Engine struct {
	*rand.Rand            // 底层随机数生成器
	mtx        sync.Mutex // 互斥锁，用于线程安全操作
}

// New 创建随机数引擎
// 参数：seed-随机数种子
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Uniform 在[lo, hi)内均匀采样（非线程安全）
// 说明：lo == hi 时直接返回lo
func (e *Engine) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*e.Float64()
}

// UniformSafe 在[lo, hi)内均匀采样（线程安全）
func (e *Engine) UniformSafe(lo, hi float64) float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Uniform(lo, hi)
}

// Round 将x按step取整，用于生成界面上易读的数值
func Round(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	n := x / step
	if n < 0 {
		return float64(int64(n-0.5)) * step
	}
	return float64(int64(n+0.5)) * step
}
