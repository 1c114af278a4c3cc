package model

import (
	"time"
)

// Account represents the database model for accounts
type Account struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	AccountNumber string    `gorm:"uniqueIndex;not null;size:10"`
	FirstName     string    `gorm:"not null;size:100"`
	LastName      string    `gorm:"not null;size:100"`
	Gender        string    `gorm:"not null;size:20"`
	PasswordHash  string    `gorm:"not null;size:255"`
	Balance       int64     `gorm:"not null;default:0"` // cents
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
