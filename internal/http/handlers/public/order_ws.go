package public

import (
	"context"
	"net/http"
	"time"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/constants"
	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	orderWSWriteWait  = 10 * time.Second
	orderWSPongWait   = 60 * time.Second
	orderWSPingPeriod = orderWSPongWait * 9 / 10
)

var orderStatusUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域由 CORS 中间件与 JWT 校验负责
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchOrderStatus 通过 WebSocket 推送订单状态变更
// 连接建立后先推送当前状态，订单进入终态后服务端主动关闭
func (h *Handler) WatchOrderStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.CanWatch(actor, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	if !cache.Enabled() {
		respondError(c, response.CodeInternal, "error.internal_error", nil)
		return
	}

	// 请求上下文在连接被接管后依然有效，服务关闭时随基础上下文取消
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	pubsub := cache.SubscribeOrderStatus(ctx, order.ID)
	if pubsub == nil {
		respondError(c, response.CodeInternal, "error.internal_error", nil)
		return
	}
	defer pubsub.Close()
	// 订阅确认后再升级，避免错过握手期间的事件
	if _, err := pubsub.Receive(ctx); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	// 快照在订阅确认后读取，鉴权到订阅之间的状态变更不会丢失
	order, err = h.OrderService.Snapshot(order.ID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal_error")
		return
	}

	conn, err := orderStatusUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		handlershared.RequestLog(c).Warnw("order_ws_upgrade_failed", "order_id", order.ID, "error", err)
		return
	}
	defer conn.Close()

	log := handlershared.RequestLog(c).With("order_id", order.ID, "account_id", actor.AccountID)
	log.Debugw("order_ws_connected")

	snapshot := cache.OrderStatusEvent{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		Status:    order.Status,
		ChangedAt: order.UpdatedAt,
	}
	_ = conn.SetWriteDeadline(time.Now().Add(orderWSWriteWait))
	if err := conn.WriteJSON(snapshot); err != nil {
		log.Debugw("order_ws_write_snapshot_failed", "error", err)
		return
	}
	if isTerminalOrderStatus(order.Status) {
		closeOrderWS(conn)
		return
	}

	// 读循环只负责处理 pong 与客户端断开
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(orderWSPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(orderWSPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(orderWSPingPeriod)
	defer ticker.Stop()
	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Debugw("order_ws_client_closed")
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			event, err := cache.DecodeOrderStatusEvent(msg)
			if err != nil {
				log.Warnw("order_ws_decode_event_failed", "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(orderWSWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Debugw("order_ws_write_failed", "error", err)
				return
			}
			if isTerminalOrderStatus(event.Status) {
				closeOrderWS(conn)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(orderWSWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func closeOrderWS(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "order finished")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(orderWSWriteWait))
}

func isTerminalOrderStatus(status string) bool {
	return status == constants.OrderStatusCompleted || status == constants.OrderStatusCancelled
}
