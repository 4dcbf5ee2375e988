package pkg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"Valo_Party/internal/model"
)

// KafkaEventProducer 把生命周期事件写入 Kafka，作为广播频道之外的持久事件流。
// 按 party id 做分区 key，保证单个 party 的 created/expired/deleted 有序。
type KafkaEventProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaEventProducer(cfg KafkaConfig) (*KafkaEventProducer, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaEventProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaEventProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Publish 实现 service.EventPublisher。
func (p *KafkaEventProducer) Publish(ctx context.Context, event string, payload any) error {
	value, err := json.Marshal(struct {
		Event   string `json:"event"`
		Payload any    `json:"payload"`
	}{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("编码事件失败: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(makeEventKey(payload)),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// makeEventKey 从事件负载里取 party id 当分区 key。
// newParty 带完整记录，partyExpired/partyDeleted 只带 id。
func makeEventKey(payload any) string {
	switch v := payload.(type) {
	case *model.Party:
		return fmt.Sprintf("%d", v.ID)
	case model.Party:
		return fmt.Sprintf("%d", v.ID)
	case uint64:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}
