package service

import (
	"context"
	"encoding/json"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"Valo_Party/internal/model"
)

// 拒绝原因直接作为对外的提示语
var (
	ErrProfanity   = errors.New("Profanity is not allowed")
	ErrCodeTooLong = errors.New("PartyCode must be 6 characters or less")
)

const MaxPartyCodeLen = 6

// PartyRepository 持久层契约：插入、查未删除列表、两个幂等的标志更新。
type PartyRepository interface {
	Create(ctx context.Context, party *model.Party) error
	ListActive(ctx context.Context) ([]model.Party, error)
	MarkExpired(ctx context.Context, id uint64) error
	MarkDeleted(ctx context.Context, id uint64) error
}

// ProfanityChecker 内容审核：命中返回 true。
type ProfanityChecker interface {
	Check(text string) bool
}

type CreatePartyParams struct {
	PartyCode   string
	Description string
	ServerTag   string
	AddTags     json.RawMessage
	Rank        string
	Gamemode    string
}

// PartyService 组合校验门、存储、调度器和事件发布，
// 负责 party 的创建和读取；状态推进只由定时器回调驱动。
type PartyService struct {
	repo   PartyRepository
	pub    EventPublisher
	sched  *LifecycleScheduler
	filter ProfanityChecker
	log    *zap.Logger
}

func NewPartyService(repo PartyRepository, pub EventPublisher, sched *LifecycleScheduler, filter ProfanityChecker, log *zap.Logger) *PartyService {
	return &PartyService{
		repo:   repo,
		pub:    pub,
		sched:  sched,
		filter: filter,
		log:    log,
	}
}

// ListParties 返回所有未删除的 party（已过期未删除的仍然可见）。
func (s *PartyService) ListParties(ctx context.Context) ([]model.Party, error) {
	return s.repo.ListActive(ctx)
}

// CreateParty 创建流程：校验 -> 归一化 tags -> 入库 -> 广播 newParty -> 挂定时器。
// 入库之前出错无任何副作用；入库之后的广播和挂定时器是尽力而为，不回滚。
func (s *PartyService) CreateParty(ctx context.Context, p CreatePartyParams) (*model.Party, error) {
	// 校验门：先审核内容，再查长度，命中第一个即拒绝
	if s.filter.Check(p.PartyCode) || s.filter.Check(p.Description) {
		return nil, ErrProfanity
	}
	if utf8.RuneCountInString(p.PartyCode) > MaxPartyCodeLen {
		return nil, ErrCodeTooLong
	}

	party := &model.Party{
		PartyCode:   p.PartyCode,
		Description: p.Description,
		ServerTag:   p.ServerTag,
		AddTags:     normalizeTags(p.AddTags),
		Rank:        p.Rank,
		Gamemode:    p.Gamemode,
	}
	if err := s.repo.Create(ctx, party); err != nil {
		return nil, err
	}

	if err := s.pub.Publish(ctx, EventPartyCreated, party); err != nil {
		s.log.Warn("广播 newParty 失败", zap.Uint64("party_id", party.ID), zap.Error(err))
	}
	s.sched.Track(party.ID)

	return party, nil
}

// normalizeTags：add_tags 不是字符串数组（字符串、数字、缺省……）时一律按空数组处理，
// 归一化之后记录里的 tags 永远是一个序列。
func normalizeTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
