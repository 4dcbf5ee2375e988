package service

import (
	"context"
	"errors"
)

// 事件名沿用对外的线上格式，订阅端靠这些名字分发。
const (
	EventPartyCreated = "newParty"     // 负载：完整 Party 记录
	EventPartyExpired = "partyExpired" // 负载：party id
	EventPartyDeleted = "partyDeleted" // 负载：party id
)

// EventPublisher 生命周期事件的发布口，发出即忘：
// 不保证送达、不缓冲、不确认。失败由调用方记日志，不影响 party 状态。
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// MultiPublisher 把同一事件扇出到多个通道（Redis 广播频道 + Kafka 事件流）。
// 任何一个通道失败不阻止其余通道发送。
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, event string, payload any) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
