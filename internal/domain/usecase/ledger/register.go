package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
)

// openingBalance is the balance every freshly provisioned account starts with
const openingBalance = "0.00"

// RegisterRequest represents a request to provision a new account.
// The credential arrives already hashed by the trusted caller.
type RegisterRequest struct {
	FirstName    string
	LastName     string
	Gender       string
	InviteCode   string
	PasswordHash string
}

// RegisterResult is the outcome of a successful registration
type RegisterResult struct {
	Account    *entity.Account
	InviteCode string
	ConsumedAt string
}

// Register provisions a new account exactly once per invite code. The invite
// compare-and-set, the account-number generation and the account creation
// commit together or not at all; two simultaneous calls with the same code
// yield exactly one account.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if err := e.validator.ValidateRegister(req); err != nil {
		return nil, err
	}

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	account, err := e.registerInTx(txCtx, req)
	if err != nil {
		e.rollback(txCtx)
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	e.logger.Info("Account registered", map[string]any{
		"account_number": account.AccountNumber,
		"invite_code":    req.InviteCode,
	})

	return &RegisterResult{
		Account:    account,
		InviteCode: req.InviteCode,
		ConsumedAt: account.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// registerInTx runs the atomic part of Register: consume the invite, find a
// free account number within the retry budget, create the row.
func (e *Engine) registerInTx(txCtx context.Context, req RegisterRequest) (*entity.Account, error) {
	invites := e.uow.InviteRepository(txCtx)

	won, err := invites.TryConsume(txCtx, req.InviteCode)
	if err != nil {
		return nil, err
	}
	if !won {
		exists, existsErr := invites.Exists(txCtx, req.InviteCode)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, errs.NewInviteError(req.InviteCode, "unknown code")
		}
		return nil, errs.NewInviteError(req.InviteCode, "already used")
	}

	accounts := e.uow.AccountRepository(txCtx)

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := e.numbers.Generate()
		if err != nil {
			return nil, err
		}

		// Collision check inside the transaction; the unique index on
		// account_number is the backstop for a race with a concurrent
		// registration drawing the same number.
		taken, err := accounts.Exists(txCtx, number)
		if err != nil {
			return nil, err
		}
		if taken {
			e.logger.Warn("Generated account number collided, retrying", map[string]any{
				"attempt": attempt + 1,
			})
			continue
		}

		account, err := entity.NewAccount(number, req.FirstName, req.LastName, req.Gender, req.PasswordHash, openingBalance, e.timeProvider)
		if err != nil {
			return nil, err
		}

		if err := accounts.Create(txCtx, account); err != nil {
			if errors.Is(err, errs.ErrDuplicateAccountNumber) {
				return nil, fmt.Errorf("%w: account number collision during commit", errs.ErrConflict)
			}
			return nil, err
		}

		return account, nil
	}

	return nil, fmt.Errorf("%w: exhausted account number retry budget", errs.ErrConflict)
}
