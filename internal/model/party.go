package model

import "time"

// PartyStatus 是由 expired / is_deleted 两个标志推导出的生命周期状态。
// 两个标志都是单调的：一旦置 true 不会回退。
type PartyStatus string

const (
	StatusActive  PartyStatus = "active"
	StatusExpired PartyStatus = "expired"
	StatusDeleted PartyStatus = "deleted"
)

type Party struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	PartyCode   string    `gorm:"size:6;not null" json:"party_code"`
	Description string    `gorm:"type:text" json:"description"`
	ServerTag   string    `gorm:"size:64" json:"server_tag"`
	AddTags     []string  `gorm:"serializer:json" json:"add_tags"`
	Rank        string    `gorm:"size:32" json:"rank"`
	Gamemode    string    `gorm:"size:32" json:"gamemode"`
	Expired     bool      `gorm:"not null;default:false" json:"expired"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Status 把两个布尔标志映射成线性状态：Active -> Expired -> Deleted。
// 删除标志优先：已删除的记录无论 expired 与否都视为 Deleted。
func (p *Party) Status() PartyStatus {
	switch {
	case p.IsDeleted:
		return StatusDeleted
	case p.Expired:
		return StatusExpired
	default:
		return StatusActive
	}
}
