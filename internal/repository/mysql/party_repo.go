package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Valo_Party/internal/model"
)

type PartyRepository struct {
	DB *gorm.DB
}

// Create 插入新纪录：created_at 取当前 UTC，两个生命周期标志初始为 false。
// gorm 会回填自增 ID，返回的就是完整记录。
func (r *PartyRepository) Create(ctx context.Context, party *model.Party) error {
	party.CreatedAt = time.Now().UTC()
	party.Expired = false
	party.IsDeleted = false
	return r.DB.WithContext(ctx).Create(party).Error
}

// ListActive 返回所有未删除的 party（含已过期未删除的）。
func (r *PartyRepository) ListActive(ctx context.Context) ([]model.Party, error) {
	var list []model.Party
	err := r.DB.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// MarkExpired 置过期标志；重复调用无额外效果（幂等）。
func (r *PartyRepository) MarkExpired(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Party{}).
		Where("id = ?", id).
		Update("expired", true).Error
}

// MarkDeleted 软删除：只置 is_deleted，不回收记录，也不动 expired。
func (r *PartyRepository) MarkDeleted(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Party{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
