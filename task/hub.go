package task

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity"
	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/randengine"
)

// 客户端指令
const (
	actionStart  = "start"
	actionReset  = "reset"
	actionSet    = "set"
	actionRandom = "random"
)

// command 客户端发送的控制指令
type command struct {
	Action string  `json:"action"`
	Field  string  `json:"field,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// message 推送给客户端的消息，Type为frame或error
type message struct {
	Type  string        `json:"type"`
	Frame *entity.Frame `json:"frame,omitempty"`
	Error string        `json:"error,omitempty"`
}

// frameHub 帧推送中心
// 功能：维护所有websocket连接，广播会话的每一帧，并把客户端指令转发给会话
// 说明：websocket连接不支持并发写，所有写操作都在mu内完成
type frameHub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader

	manager entity.ISessionManager
	rand    *randengine.Engine
}

func newFrameHub(manager entity.ISessionManager, rand *randengine.Engine) *frameHub {
	return &frameHub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		manager: manager,
		rand:    rand,
	}
}

func (h *frameHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *frameHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *frameHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast 向所有连接推送一帧，写失败的连接被移除
func (h *frameHub) broadcast(frame entity.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := message{Type: "frame", Frame: &frame}
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to write to client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// reply 只向发出指令的连接回复错误
func (h *frameHub) reply(conn *websocket.Conn, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if werr := conn.WriteJSON(message{Type: "error", Error: err.Error()}); werr != nil {
		log.Warnf("failed to write to client: %v", werr)
	}
}

// apply 执行一条客户端指令
func (h *frameHub) apply(cmd command) error {
	switch cmd.Action {
	case actionStart:
		_, err := h.manager.Start()
		return err
	case actionReset:
		h.manager.Reset()
		return nil
	case actionSet:
		f, err := physics.ParseField(cmd.Field)
		if err != nil {
			return err
		}
		_, err = h.manager.Set(f, cmd.Value)
		return err
	case actionRandom:
		return h.manager.Randomize(h.rand)
	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
}

func (h *frameHub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("websocket upgrade failed: %v", err)
			return
		}
		h.add(conn)
		defer h.remove(conn)

		// 连接后立即推送当前帧
		h.broadcast(h.manager.Frame())

		for {
			var cmd command
			if err := conn.ReadJSON(&cmd); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warnf("frame stream read error: %v", err)
				}
				return
			}
			if err := h.apply(cmd); err != nil {
				log.Debugf("command %+v rejected: %v", cmd, err)
				h.reply(conn, err)
				continue
			}
			h.broadcast(h.manager.Frame())
		}
	}
}
