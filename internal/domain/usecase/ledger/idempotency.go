package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
)

// IdempotencyHandler resolves retried transfer intents to their committed
// record. The unique index on the idempotency key is the authority; this
// pre-check only lets duplicate retries return without taking row locks.
type IdempotencyHandler struct {
	transferRepo persistence.TransferRepository
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(transferRepo persistence.TransferRepository) *IdempotencyHandler {
	return &IdempotencyHandler{transferRepo: transferRepo}
}

// Check returns the committed record for the key, a boolean indicating
// whether one was found, and any error
func (h *IdempotencyHandler) Check(ctx context.Context, idempotencyKey string) (*entity.TransferRecord, bool, error) {
	exists, err := h.transferRepo.ExistsByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if !exists {
		return nil, false, nil
	}

	record, err := h.transferRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		if errors.Is(err, errs.ErrTransferNotFound) {
			// Existed when we checked but is gone now. The log is
			// append-only, so treat the key as unseen and let the unique
			// index arbitrate.
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("failed to load committed transfer: %w", err)
	}

	return record, true, nil
}
