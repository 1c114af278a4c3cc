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

// TransferRepository implements the append-only transfer log using GORM
type TransferRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransferRepository creates a new TransferRepository instance
func NewTransferRepository(db *gorm.DB, logger coreport.Logger) *TransferRepository {
	return &TransferRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToTransfer converts a transfer model to an entity
func modelToTransfer(m *model.Transfer) *entity.TransferRecord {
	return &entity.TransferRecord{
		ID:                    m.ID,
		IdempotencyKey:        m.IdempotencyKey,
		SenderAccountNumber:   m.SenderAccountNumber,
		ReceiverAccountNumber: m.ReceiverAccountNumber,
		Amount:                m.Amount,
		AmountInCents:         m.AmountInCents,
		Description:           m.Description,
		CreatedAt:             m.CreatedAt,
	}
}

// Append inserts a new transfer record. The unique index on the idempotency
// key turns a concurrent duplicate into ErrConflict, which the engine
// resolves to the first committed record.
func (r *TransferRepository) Append(ctx context.Context, record *entity.TransferRecord) error {
	m := model.Transfer{
		IdempotencyKey:        record.IdempotencyKey,
		SenderAccountNumber:   record.SenderAccountNumber,
		ReceiverAccountNumber: record.ReceiverAccountNumber,
		Amount:                record.Amount,
		AmountInCents:         record.AmountInCents,
		Description:           record.Description,
		CreatedAt:             record.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Transfer with same idempotency key already committed", map[string]any{
				"idempotency_key": record.IdempotencyKey,
			})
			return fmt.Errorf("%w: idempotency key already committed", errs.ErrConflict)
		}
		if r.errorClassifier.IsSerializationError(result.Error) {
			return errs.ErrConflict
		}
		r.logger.Error("Failed to append transfer record", map[string]any{
			"idempotency_key": record.IdempotencyKey,
			"error":           result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}

	record.ID = m.ID
	return nil
}

// GetByIdempotencyKey retrieves the committed record for a key
func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*entity.TransferRecord, error) {
	var m model.Transfer
	result := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransferNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}
	return modelToTransfer(&m), nil
}

// ExistsByIdempotencyKey reports whether a record with the key exists
func (r *TransferRepository) ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transfer{}).
		Where("idempotency_key = ?", key).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}
	return count > 0, nil
}

// ListByAccount returns every transfer the account participates in, most
// recent first (ties broken by descending id, which is append order)
func (r *TransferRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*entity.TransferRecord, error) {
	var models []model.Transfer
	result := r.db.WithContext(ctx).
		Where("sender_account_number = ? OR receiver_account_number = ?", accountNumber, accountNumber).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, result.Error.Error())
	}

	records := make([]*entity.TransferRecord, 0, len(models))
	for i := range models {
		records = append(records, modelToTransfer(&models[i]))
	}
	return records, nil
}
