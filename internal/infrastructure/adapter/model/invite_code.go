package model

import (
	"time"
)

// InviteCode represents the database model for single-use invite codes
type InviteCode struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	Code      string     `gorm:"uniqueIndex;not null;size:64"`
	IsUsed    bool       `gorm:"not null;default:false"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for InviteCode
func (InviteCode) TableName() string {
	return "invite_codes"
}
