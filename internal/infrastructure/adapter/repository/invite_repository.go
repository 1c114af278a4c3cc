package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// InviteRepository implements the invite registry using GORM
type InviteRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewInviteRepository creates a new InviteRepository instance
func NewInviteRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *InviteRepository {
	return &InviteRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// TryConsume flips is_used false->true in one conditional update. The row
// count is the verdict: 1 means this caller consumed the code, 0 means the
// code is unknown or was already used.
func (r *InviteRepository) TryConsume(ctx context.Context, code string) (bool, error) {
	now := r.timeProvider.Now()

	result := r.db.WithContext(ctx).Model(&model.InviteCode{}).
		Where("code = ? AND is_used = ?", code, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": now,
		})

	if result.Error != nil {
		if r.errorClassifier.IsSerializationError(result.Error) {
			return false, errs.ErrConflict
		}
		r.logger.Error("Failed to consume invite code", map[string]any{
			"invite_code": code,
			"error":       result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}

	won := result.RowsAffected == 1
	if won {
		r.logger.Info("Invite code consumed", map[string]any{
			"invite_code": code,
		})
	}
	return won, nil
}

// Exists reports whether a code row exists at all
func (r *InviteRepository) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.InviteCode{}).
		Where("code = ?", code).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}
	return count > 0, nil
}

// Create inserts a fresh unused code
func (r *InviteRepository) Create(ctx context.Context, invite *entity.InviteCode) error {
	m := model.InviteCode{
		Code:      invite.Code,
		IsUsed:    invite.IsUsed,
		UsedAt:    invite.UsedAt,
		CreatedAt: invite.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return fmt.Errorf("%w: invite code already issued", errs.ErrConflict)
		}
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}

	invite.ID = m.ID
	return nil
}
