package ledger

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
)

// Validator checks engine inputs before any mutation is attempted
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTransfer validates a transfer request and returns the amount in
// cents on success. All precondition violations are reported here, before
// the engine touches the store.
func (v *Validator) ValidateTransfer(req TransferRequest) (int64, error) {
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return 0, errs.ErrMissingIdempotencyKey
	}

	sender := strings.TrimSpace(req.SenderNumber)
	receiver := strings.TrimSpace(req.ReceiverNumber)
	if sender == "" || receiver == "" {
		return 0, fmt.Errorf("%w: sender and receiver account numbers are required", errs.ErrInvalidRequest)
	}
	if sender == receiver {
		return 0, errs.ErrSelfTransfer
	}

	cents, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		return 0, err
	}

	return cents, nil
}

// ValidateRegister validates a registration request
func (v *Validator) ValidateRegister(req RegisterRequest) error {
	for field, value := range map[string]string{
		"firstName":    req.FirstName,
		"lastName":     req.LastName,
		"gender":       req.Gender,
		"inviteCode":   req.InviteCode,
		"passwordHash": req.PasswordHash,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", errs.ErrInvalidRequest, field)
		}
	}
	return nil
}
