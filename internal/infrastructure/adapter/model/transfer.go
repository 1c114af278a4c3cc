package model

import (
	"time"
)

// Transfer represents the database model for the append-only transfer log.
// Rows are inserted once and never updated or deleted.
type Transfer struct {
	ID                    uint64    `gorm:"primaryKey;autoIncrement"`
	IdempotencyKey        string    `gorm:"uniqueIndex;not null;size:255"`
	SenderAccountNumber   string    `gorm:"not null;index;size:10"`
	ReceiverAccountNumber string    `gorm:"not null;index;size:10"`
	Amount                string    `gorm:"not null;size:50"`
	AmountInCents         int64     `gorm:"not null"`
	Description           string    `gorm:"type:text"`
	CreatedAt             time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transfer
func (Transfer) TableName() string {
	return "transfers"
}
