package task

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
)

const (
	// FramesPath websocket帧推送路径
	FramesPath = "/ws/frames"

	frameInterval   = time.Second / 60
	shutdownTimeout = 5 * time.Second
)

// newHandler 组装HTTP路由：时钟RPC、会话RPC与帧推送
func (ctx *Context) newHandler() (http.Handler, *frameHub) {
	mux := http.NewServeMux()
	ctx.clock.Register(mux, ctx.sessionManager.Locker())
	ctx.sessionManager.Register(mux)
	hub := newFrameHub(ctx.sessionManager, ctx.rand)
	mux.Handle(FramesPath, hub.handler())
	return mux, hub
}

// Serve 提供远程界面服务
// 功能：监听addr，按实际帧间隔推进会话并向websocket客户端广播
// 参数：c-取消后优雅关闭服务，addr-监听地址
func (ctx *Context) Serve(c context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %v: %w", addr, err)
	}
	return ctx.serve(c, lis)
}

func (ctx *Context) serve(c context.Context, lis net.Listener) error {
	handler, hub := ctx.newHandler()
	server := &http.Server{Handler: handler}

	loopCtx, cancel := context.WithCancel(c)
	defer cancel()
	go ctx.frameLoop(loopCtx, hub)
	go func() {
		<-loopCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.Infof("serving on %v", lis.Addr())
	if err := server.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// frameLoop 主循环
// 算法说明：
// 1. 按固定间隔醒来，用两次醒来的实际时间差推进会话
// 2. 只在动画进行中广播；动画结束后只再广播最后一帧
func (ctx *Context) frameLoop(c context.Context, hub *frameHub) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	sentDone := false
	for {
		select {
		case <-c.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if ctx.closed.Load() {
				return
			}
			if ctx.sessionManager.Phase() != entity.PhaseAnimating {
				sentDone = false
				continue
			}
			frame := ctx.sessionManager.Tick(dt)
			if frame.Done && sentDone {
				continue
			}
			sentDone = frame.Done
			if hub.count() > 0 {
				hub.broadcast(frame)
			}
		}
	}
}
