package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// EventChannel 生命周期事件的广播频道。
// 网关层订阅该频道把事件推给在线客户端（原来 socket.io 承担的角色）。
const EventChannel = "party:events"

// EventEnvelope 频道上的消息格式：{"event":"newParty","payload":{...}}
type EventEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// EventBroker 基于 Redis PUBLISH/SUBSCRIBE 的广播通道。
// 不保证送达，也不为晚连接的订阅者缓冲，发出即忘。
type EventBroker struct {
	RDB *redis.Client
}

func (b *EventBroker) Publish(ctx context.Context, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("编码事件负载失败: %w", err)
	}
	data, err := json.Marshal(EventEnvelope{Event: event, Payload: raw})
	if err != nil {
		return fmt.Errorf("编码事件信封失败: %w", err)
	}
	return b.RDB.Publish(ctx, EventChannel, data).Err()
}

// Subscribe 订阅事件频道，调用方负责 Close。
func (b *EventBroker) Subscribe(ctx context.Context) *redis.PubSub {
	return b.RDB.Subscribe(ctx, EventChannel)
}
