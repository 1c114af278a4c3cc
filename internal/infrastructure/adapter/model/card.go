package model

import (
	"time"
)

// Card represents the database model for linked payment cards
type Card struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID   uint64    `gorm:"uniqueIndex;not null"`
	CardNumber  string    `gorm:"not null;size:19"`
	ExpiryMonth int       `gorm:"not null"`
	ExpiryYear  int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
