package session

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/decision"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/codec"
)

const (
	// SessionServiceName 会话服务名
	SessionServiceName = "yellowlight.session.v1.SessionService"

	SessionServiceSetFieldProcedure      = "/" + SessionServiceName + "/SetField"
	SessionServiceStartProcedure         = "/" + SessionServiceName + "/Start"
	SessionServiceResetProcedure         = "/" + SessionServiceName + "/Reset"
	SessionServiceGetFrameProcedure      = "/" + SessionServiceName + "/GetFrame"
	SessionServiceGetTrajectoryProcedure = "/" + SessionServiceName + "/GetTrajectory"
)

type SetFieldRequest struct {
	Field physics.Field `json:"field"`
	Value float64       `json:"value"` // 界面单位
}

type SetFieldResponse struct {
	Applied float64 `json:"applied"` // 钳制后实际写入的值
	Clamped bool    `json:"clamped"`
}

type StartRequest struct{}

type StartResponse struct {
	Decision decision.Decision `json:"decision"`
	Advice   decision.Advice   `json:"advice"`
}

type ResetRequest struct{}

type ResetResponse struct {
	Frame entity.Frame `json:"frame"`
}

type GetFrameRequest struct{}

type GetFrameResponse struct {
	Frame entity.Frame `json:"frame"`
}

type GetTrajectoryRequest struct {
	Actor decision.Actor `json:"actor"`
	Step  float64        `json:"step"` // 采样步长（秒）
}

type GetTrajectoryResponse struct {
	Samples []decision.Sample `json:"samples"`
}

// Register 将SessionService注册到HTTP路由
// 功能：以connect协议提供会话的远程调用接口，消息使用JSON编解码
func (m *Manager) Register(mux *http.ServeMux) {
	opts := []connect.HandlerOption{connect.WithCodec(codec.JSON{})}
	mux.Handle(SessionServiceSetFieldProcedure, connect.NewUnaryHandler(SessionServiceSetFieldProcedure, m.SetField, opts...))
	mux.Handle(SessionServiceStartProcedure, connect.NewUnaryHandler(SessionServiceStartProcedure, m.StartRPC, opts...))
	mux.Handle(SessionServiceResetProcedure, connect.NewUnaryHandler(SessionServiceResetProcedure, m.ResetRPC, opts...))
	mux.Handle(SessionServiceGetFrameProcedure, connect.NewUnaryHandler(SessionServiceGetFrameProcedure, m.GetFrame, opts...))
	mux.Handle(SessionServiceGetTrajectoryProcedure, connect.NewUnaryHandler(SessionServiceGetTrajectoryProcedure, m.GetTrajectory, opts...))
}

// SetField RPC接口：修改场景参数
// 说明：非Idle阶段返回FailedPrecondition，非法数值返回InvalidArgument
func (m *Manager) SetField(
	ctx context.Context, in *connect.Request[SetFieldRequest],
) (*connect.Response[SetFieldResponse], error) {
	req := in.Msg
	applied, err := m.Set(req.Field, req.Value)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SetFieldResponse{
		Applied: applied,
		Clamped: applied != req.Value,
	}), nil
}

// StartRPC RPC接口：决策并开始动画
func (m *Manager) StartRPC(
	ctx context.Context, in *connect.Request[StartRequest],
) (*connect.Response[StartResponse], error) {
	d, err := m.Start()
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&StartResponse{
		Decision: d,
		Advice:   decision.Recommend(d),
	}), nil
}

// ResetRPC RPC接口：停止动画并回到编辑阶段
func (m *Manager) ResetRPC(
	ctx context.Context, in *connect.Request[ResetRequest],
) (*connect.Response[ResetResponse], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Reset()
	return connect.NewResponse(&ResetResponse{Frame: m.session.Frame()}), nil
}

// GetFrame RPC接口：获取当前帧
func (m *Manager) GetFrame(
	ctx context.Context, in *connect.Request[GetFrameRequest],
) (*connect.Response[GetFrameResponse], error) {
	return connect.NewResponse(&GetFrameResponse{Frame: m.Frame()}), nil
}

// GetTrajectory RPC接口：获取当前决策下某辆车的完整轨迹
func (m *Manager) GetTrajectory(
	ctx context.Context, in *connect.Request[GetTrajectoryRequest],
) (*connect.Response[GetTrajectoryResponse], error) {
	req := in.Msg
	samples, err := m.Trajectory(req.Actor, req.Step)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetTrajectoryResponse{Samples: samples}), nil
}

func toConnectError(err error) error {
	if errors.Is(err, ErrNotIdle) || errors.Is(err, ErrNotEvaluated) {
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	return connect.NewError(connect.CodeInvalidArgument, err)
}
