package ledger

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Gender:       "female",
		InviteCode:   "code-1",
		PasswordHash: "hash",
	}
}

func TestRegisterProvisionsAccount(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	uow.invites.On("TryConsume", mock.Anything, "code-1").Return(true, nil)
	uow.accounts.On("Exists", mock.Anything, mock.Anything).Return(false, nil)
	uow.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Balance() == 0 && a.FirstName == "Ada" && len(a.AccountNumber) == AccountNumberLength
	})).Return(nil)

	result, err := engine.Register(ctx, validRegisterRequest())

	assert.NoError(t, err)
	assert.Len(t, result.Account.AccountNumber, AccountNumberLength)
	assert.Equal(t, "0.00", result.Account.FormattedBalance())
	assert.Equal(t, "code-1", result.InviteCode)

	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 1, uow.commits)
	assert.Equal(t, 0, uow.rollbacks)
	uow.invites.AssertExpectations(t)
	uow.accounts.AssertExpectations(t)
}

func TestRegisterUnknownInvite(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	uow.invites.On("TryConsume", mock.Anything, "code-1").Return(false, nil)
	uow.invites.On("Exists", mock.Anything, "code-1").Return(false, nil)

	_, err := engine.Register(ctx, validRegisterRequest())

	assert.ErrorIs(t, err, errs.ErrInvalidInvite)
	assert.Contains(t, err.Error(), "unknown code")
	assert.Equal(t, 1, uow.rollbacks)
	assert.Equal(t, 0, uow.commits)
	uow.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUsedInvite(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	uow.invites.On("TryConsume", mock.Anything, "code-1").Return(false, nil)
	uow.invites.On("Exists", mock.Anything, "code-1").Return(true, nil)

	_, err := engine.Register(ctx, validRegisterRequest())

	assert.ErrorIs(t, err, errs.ErrInvalidInvite)
	assert.Contains(t, err.Error(), "already used")
	assert.Equal(t, 1, uow.rollbacks)
	uow.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRetriesOnNumberCollision(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	uow.invites.On("TryConsume", mock.Anything, "code-1").Return(true, nil)
	// First draw collides, second is free
	uow.accounts.On("Exists", mock.Anything, mock.Anything).Return(true, nil).Once()
	uow.accounts.On("Exists", mock.Anything, mock.Anything).Return(false, nil).Once()
	uow.accounts.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := engine.Register(ctx, validRegisterRequest())

	assert.NoError(t, err)
	assert.Len(t, result.Account.AccountNumber, AccountNumberLength)
	assert.Equal(t, 1, uow.commits)
	uow.accounts.AssertNumberOfCalls(t, "Exists", 2)
}

func TestRegisterExhaustsNumberBudget(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	uow.invites.On("TryConsume", mock.Anything, "code-1").Return(true, nil)
	uow.accounts.On("Exists", mock.Anything, mock.Anything).Return(true, nil)

	_, err := engine.Register(ctx, validRegisterRequest())

	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, 1, uow.rollbacks)
	assert.Equal(t, 0, uow.commits)
	uow.accounts.AssertNumberOfCalls(t, "Exists", maxNumberAttempts)
	uow.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterLosesCreateRace(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	uow.invites.On("TryConsume", mock.Anything, "code-1").Return(true, nil)
	uow.accounts.On("Exists", mock.Anything, mock.Anything).Return(false, nil)
	// A concurrent registration claimed the same number between the in-tx
	// check and the insert; the unique index reports it
	uow.accounts.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDuplicateAccountNumber)

	_, err := engine.Register(ctx, validRegisterRequest())

	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, 1, uow.rollbacks)
	assert.Equal(t, 0, uow.commits)
}

func TestRegisterValidationFailuresNeverTouchTheStore(t *testing.T) {
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(r RegisterRequest) RegisterRequest
	}{
		{"Missing first name", func(r RegisterRequest) RegisterRequest { r.FirstName = ""; return r }},
		{"Missing invite code", func(r RegisterRequest) RegisterRequest { r.InviteCode = ""; return r }},
		{"Missing password hash", func(r RegisterRequest) RegisterRequest { r.PasswordHash = ""; return r }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			uow := newFakeUnitOfWork()
			engine, _ := newTestEngine(uow)

			_, err := engine.Register(ctx, m.mutate(validRegisterRequest()))

			assert.ErrorIs(t, err, errs.ErrInvalidRequest)
			assert.Equal(t, 0, uow.begins)
			uow.invites.AssertNotCalled(t, "TryConsume", mock.Anything, mock.Anything)
		})
	}
}
