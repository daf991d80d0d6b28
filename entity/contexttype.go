package entity

import (
	"github.com/tsinghua-fib-lab/yellowlight-sim/clock"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	RuntimeConfig() *config.RuntimeConfig
}
