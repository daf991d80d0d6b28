package clock

import (
	"context"
	"net/http"
	"sync"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ClockServiceName 时钟服务名
	ClockServiceName = "yellowlight.clock.v1.ClockService"
	// ClockServiceNowProcedure Now接口的路径
	ClockServiceNowProcedure = "/" + ClockServiceName + "/Now"
)

// Register 将ClockService注册到HTTP路由
// 参数：mux-路由，mu-保护时钟读写的锁（与推进时钟的一方共用）
func (c *Clock) Register(mux *http.ServeMux, mu sync.Locker, opts ...connect.HandlerOption) {
	mux.Handle(ClockServiceNowProcedure, connect.NewUnaryHandler(
		ClockServiceNowProcedure,
		func(ctx context.Context, in *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.DoubleValue], error) {
			mu.Lock()
			defer mu.Unlock()
			return c.Now(ctx, in)
		},
		opts...,
	))
}

// Now 获取当前仿真时间
// 功能：RPC接口，返回决策后经过的仿真时间（秒）
func (c *Clock) Now(ctx context.Context, in *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.DoubleValue], error) {
	return connect.NewResponse(wrapperspb.Double(c.T)), nil
}
