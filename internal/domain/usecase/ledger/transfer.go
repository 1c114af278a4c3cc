package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
)

// TransferRequest represents a request to move funds between two accounts
type TransferRequest struct {
	SenderNumber   string
	ReceiverNumber string
	Amount         string
	IdempotencyKey string
}

// Transfer atomically moves the amount from sender to receiver and appends
// one transfer record. If an operation with the same idempotency key has
// already committed, the prior record is returned without re-applying the
// effect. A reader can never observe a decremented sender without the
// matching incremented receiver and log record.
func (e *Engine) Transfer(ctx context.Context, req TransferRequest) (*entity.TransferRecord, error) {
	amountCents, err := e.validator.ValidateTransfer(req)
	if err != nil {
		return nil, err
	}

	// Fast path: a retried intent returns the committed record without
	// taking row locks. The unique index inside the transaction remains
	// the authority for concurrent duplicates.
	if record, found, err := e.idempotency.Check(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if found {
		e.logger.Info("Duplicate transfer intent resolved from log", map[string]any{
			"idempotency_key": req.IdempotencyKey,
			"transfer_id":     record.ID,
		})
		return record, nil
	}

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	record, err := e.transferInTx(txCtx, req, amountCents)
	if err != nil {
		e.rollback(txCtx)

		// Lost the append race to a concurrent retry with the same key:
		// the effect is committed exactly once, return the winner's record.
		if errors.Is(err, errs.ErrConflict) {
			if prior, found, checkErr := e.idempotency.Check(ctx, req.IdempotencyKey); checkErr == nil && found {
				return prior, nil
			}
		}
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, errs.NewTransferError(req.IdempotencyKey, req.SenderNumber, req.ReceiverNumber, req.Amount,
			"commit failed", err)
	}

	e.logger.Info("Transfer committed", map[string]any{
		"transfer_id":     record.ID,
		"idempotency_key": record.IdempotencyKey,
		"sender":          record.SenderAccountNumber,
		"receiver":        record.ReceiverAccountNumber,
		"amount":          record.Amount,
	})

	return record, nil
}

// transferInTx performs the three phases of a transfer inside one store
// transaction: lock and check, mutate both balances, append the record.
func (e *Engine) transferInTx(txCtx context.Context, req TransferRequest, amountCents int64) (*entity.TransferRecord, error) {
	accounts := e.uow.AccountRepository(txCtx)

	sender, receiver, err := accounts.GetPairForUpdate(txCtx, req.SenderNumber, req.ReceiverNumber)
	if err != nil {
		return nil, err
	}

	if !sender.CanDebit(amountCents) {
		return nil, errs.NewInsufficientFundsError(sender.AccountNumber, entity.CentsToString(amountCents), sender.FormattedBalance())
	}

	// The rows are locked, but the decrement is still expressed as a
	// conditional update so the non-negativity guard and the write are one
	// statement.
	if err := accounts.Debit(txCtx, sender.AccountNumber, amountCents); err != nil {
		return nil, err
	}
	if err := accounts.Credit(txCtx, receiver.AccountNumber, amountCents); err != nil {
		return nil, err
	}

	record, err := entity.NewTransferRecord(req.IdempotencyKey, sender, receiver, amountCents, e.clock.Next(e.timeProvider.Now()))
	if err != nil {
		return nil, err
	}

	if err := e.uow.TransferRepository(txCtx).Append(txCtx, record); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to append transfer record: %w", err)
	}

	return record, nil
}
