package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	redisrepo "Valo_Party/internal/repository/redis"
)

// EventsHandler 把 Redis 广播频道上的生命周期事件以 SSE 推给在线客户端。
// 连接和断开只记日志，核心不依赖订阅者状态。
type EventsHandler struct {
	broker *redisrepo.EventBroker
	log    *zap.Logger
}

func NewEventsHandler(broker *redisrepo.EventBroker, log *zap.Logger) *EventsHandler {
	return &EventsHandler{broker: broker, log: log}
}

// Stream GET /api/events
func (h *EventsHandler) Stream(c *gin.Context) {
	h.log.Info("客户端已连接", zap.String("remote", c.ClientIP()))
	defer h.log.Info("客户端已断开", zap.String("remote", c.ClientIP()))

	sub := h.broker.Subscribe(c.Request.Context())
	defer sub.Close()
	ch := sub.Channel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			var env redisrepo.EventEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				h.log.Warn("事件信封解析失败", zap.Error(err))
				return true
			}
			c.SSEvent(env.Event, env.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
