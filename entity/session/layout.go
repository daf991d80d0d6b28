package session

import (
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

const (
	carWidth  = 1.2   // 车宽（米），停车线标记向路口内侧偏移一个车宽
	carY      = 0.5   // 车辆离地高度
	lineY     = -0.45 // 路面标记高度
	laneRatio = 7.0   // 车道横向偏移以7米宽路口为基准按比例缩放
)

// 每辆车所在车道的横向偏移（7米宽路口时的值）
var laneZ = map[decision.Actor]float64{
	decision.ActorAcceleratingCar: 2.8,
	decision.ActorReferenceCar:    1.85,
	decision.ActorDeceleratingCar: 0.9,
}

// carPose 车辆在接近方向位置x处的渲染位置
func carPose(s physics.PhysicsState, actor decision.Actor, x float64, visible bool) entity.ActorPose {
	return entity.ActorPose{
		Position: entity.Vec3{X: x, Y: carY, Z: s.L * laneZ[actor] / laneRatio},
		Scale:    entity.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  visible,
	}
}

// intersectionPose 路口区域：随路口宽度缩放
func intersectionPose(s physics.PhysicsState) entity.ActorPose {
	return entity.ActorPose{
		Position: entity.Vec3{X: 0, Y: lineY, Z: 0},
		Scale:    entity.Vec3{X: s.L, Y: 1, Z: s.L},
		Visible:  true,
	}
}

// markers 停车线（车辆一侧）与驶出线（对侧）
func markers(s physics.PhysicsState) map[string]entity.Vec3 {
	return map[string]entity.Vec3{
		"stopLine": {X: s.L/2 - carWidth, Y: lineY, Z: 0},
		"exitLine": {X: -s.L/2 + carWidth, Y: lineY, Z: 0},
	}
}

// camera 相机随路口宽度与初始距离升高，保证整个场景可见
func camera(s physics.PhysicsState) entity.Vec3 {
	return entity.Vec3{X: 6, Y: 25 + s.L/3 + s.D0/1.5, Z: 20}
}
