package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
)

// PersonalType tags a transfer relative to the account viewing it
type PersonalType string

// Direction values for the per-account history view
const (
	DirectionAddition    PersonalType = "addition"
	DirectionSubtraction PersonalType = "subtraction"
)

// TransferRecord is the immutable, append-only record of a committed transfer.
// It is the sole source of truth for history; per-account views are derived
// from it and never separately maintained.
type TransferRecord struct {
	ID                    uint64
	IdempotencyKey        string // caller-supplied nonce, unique per transfer intent
	SenderAccountNumber   string
	ReceiverAccountNumber string
	Amount                string // two decimal places
	AmountInCents         int64
	Description           string
	CreatedAt             time.Time
}

// NewTransferRecord creates a transfer record with basic validation.
// Sender and receiver must be distinct existing accounts; the description is
// generated from their display names and stored as data, never as SQL text.
func NewTransferRecord(idempotencyKey string, sender, receiver *Account, amountCents int64, createdAt time.Time) (*TransferRecord, error) {
	if idempotencyKey == "" {
		return nil, errs.ErrMissingIdempotencyKey
	}
	if sender == nil || receiver == nil {
		return nil, errs.ErrAccountNotFound
	}
	if sender.AccountNumber == receiver.AccountNumber {
		return nil, errs.ErrSelfTransfer
	}
	if amountCents <= 0 {
		return nil, errs.ErrNegativeAmount
	}

	return &TransferRecord{
		IdempotencyKey:        idempotencyKey,
		SenderAccountNumber:   sender.AccountNumber,
		ReceiverAccountNumber: receiver.AccountNumber,
		Amount:                CentsToString(amountCents),
		AmountInCents:         amountCents,
		Description:           fmt.Sprintf("Transfer from %s to %s", sender.DisplayName(), receiver.DisplayName()),
		CreatedAt:             createdAt,
	}, nil
}

// DirectionFor returns the direction of this transfer relative to the given
// account: money left it (subtraction) or arrived at it (addition).
func (t *TransferRecord) DirectionFor(accountNumber string) (PersonalType, error) {
	switch accountNumber {
	case t.SenderAccountNumber:
		return DirectionSubtraction, nil
	case t.ReceiverAccountNumber:
		return DirectionAddition, nil
	default:
		return "", fmt.Errorf("%w: account %s is not part of transfer %d", errs.ErrInvalidRequest, accountNumber, t.ID)
	}
}

// Involves reports whether the account participates in this transfer
func (t *TransferRecord) Involves(accountNumber string) bool {
	return accountNumber == t.SenderAccountNumber || accountNumber == t.ReceiverAccountNumber
}
