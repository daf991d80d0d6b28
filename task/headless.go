package task

import (
	"context"
	"flag"
	"fmt"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 50, "心跳日志间隔步数")
)

// RunHeadless 无界面运行
// 功能：对当前场景决策一次，并以固定步长推进到动画结束
// 参数：c-用于取消运行
// 返回：决策结果；场景超出定义域或运行被取消时返回错误
// 算法说明：
// 1. 调用会话的Start得到决策
// 2. 每步按时钟DT推进会话并定期输出心跳日志
// 3. 到达动画时长上限、时钟步数耗尽或任务关闭时结束
func (ctx *Context) RunHeadless(c context.Context) (decision.Decision, error) {
	m := ctx.sessionManager
	d, err := m.Start()
	if err != nil {
		return decision.Decision{}, err
	}
	advice := decision.Recommend(d)
	log.Infof("%s (%s)", advice.Headline, advice.Detail)

	var frame entity.Frame
	for !frame.Done {
		select {
		case <-c.Done():
			return d, fmt.Errorf("headless run: %w", c.Err())
		default:
		}
		frame = m.Tick(ctx.clock.DT)
		if *heartBeatInterval > 0 && ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
			logFrame(ctx.clock.String(), frame)
		}
		if ctx.clock.Exhausted() || ctx.closed.Load() {
			break
		}
	}
	logFrame(ctx.clock.String(), frame)
	log.Infof("engine complete")
	return d, nil
}

func logFrame(now string, frame entity.Frame) {
	log.Infof(
		"STEP %s light=%v accelerating=%s decelerating=%s reference=%.2f",
		now, frame.Light.State,
		poseText(frame.Actors[decision.ActorAcceleratingCar]),
		poseText(frame.Actors[decision.ActorDeceleratingCar]),
		frame.Actors[decision.ActorReferenceCar].Position.X,
	)
}

func poseText(p entity.ActorPose) string {
	if !p.Visible {
		return "-"
	}
	return fmt.Sprintf("%.2f", p.Position.X)
}
