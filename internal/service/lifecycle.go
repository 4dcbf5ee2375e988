package service

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// 两个期限都从创建时刻起算，互不依赖：
// 过期只影响 expired 标志，删除只影响 is_deleted（读可见性）。
const (
	ExpireAfter = 5 * time.Minute
	DeleteAfter = 60 * time.Minute
)

type partyTimers struct {
	expire clockwork.Timer
	remove clockwork.Timer
}

// LifecycleScheduler 为每个 party 维护一对一次性定时器，驱动
// Active -> Expired -> Deleted 的状态推进。定时器只存在于内存：
// 进程重启后未触发的迁移会永久丢失，这是已接受的限制，不做恢复。
type LifecycleScheduler struct {
	clock clockwork.Clock
	repo  PartyRepository
	pub   EventPublisher
	log   *zap.Logger

	mu     sync.Mutex
	timers map[uint64]*partyTimers
}

func NewLifecycleScheduler(clock clockwork.Clock, repo PartyRepository, pub EventPublisher, log *zap.Logger) *LifecycleScheduler {
	return &LifecycleScheduler{
		clock:  clock,
		repo:   repo,
		pub:    pub,
		log:    log,
		timers: make(map[uint64]*partyTimers),
	}
}

// Track 在创建时刻无条件挂上过期和删除两个定时器。
func (s *LifecycleScheduler) Track(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[id]; ok {
		return
	}
	s.timers[id] = &partyTimers{
		expire: s.clock.AfterFunc(ExpireAfter, func() { s.onExpire(id) }),
		remove: s.clock.AfterFunc(DeleteAfter, func() { s.onDelete(id) }),
	}
}

func (s *LifecycleScheduler) onExpire(id uint64) {
	ctx := context.Background()
	if err := s.repo.MarkExpired(ctx, id); err != nil {
		// 不重挂定时器，该迁移永久错过
		s.log.Error("标记过期失败", zap.Uint64("party_id", id), zap.Error(err))
		return
	}
	if err := s.pub.Publish(ctx, EventPartyExpired, id); err != nil {
		s.log.Warn("广播 partyExpired 失败", zap.Uint64("party_id", id), zap.Error(err))
	}
}

func (s *LifecycleScheduler) onDelete(id uint64) {
	defer s.untrack(id)
	ctx := context.Background()
	if err := s.repo.MarkDeleted(ctx, id); err != nil {
		s.log.Error("标记删除失败", zap.Uint64("party_id", id), zap.Error(err))
		return
	}
	if err := s.pub.Publish(ctx, EventPartyDeleted, id); err != nil {
		s.log.Warn("广播 partyDeleted 失败", zap.Uint64("party_id", id), zap.Error(err))
	}
}

func (s *LifecycleScheduler) untrack(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, id)
}

// Stop 停掉所有未触发的定时器，进程退出时调用。
func (s *LifecycleScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.expire.Stop()
		t.remove.Stop()
		delete(s.timers, id)
	}
}
