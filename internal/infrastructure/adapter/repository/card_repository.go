package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CardRepository implements read access to linked cards using GORM
type CardRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewCardRepository creates a new CardRepository instance
func NewCardRepository(db *gorm.DB, logger coreport.Logger) *CardRepository {
	return &CardRepository{db: db, logger: logger}
}

// GetByAccountID returns the card linked to the account, or ErrNotFound
// when the account has none
func (r *CardRepository) GetByAccountID(ctx context.Context, accountID uint64) (*entity.Card, error) {
	var m model.Card
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}

	return &entity.Card{
		ID:          m.ID,
		AccountID:   m.AccountID,
		CardNumber:  m.CardNumber,
		ExpiryMonth: m.ExpiryMonth,
		ExpiryYear:  m.ExpiryYear,
	}, nil
}
