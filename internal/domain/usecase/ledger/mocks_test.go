package ledger

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository mocks persistence.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetPairForUpdate(ctx context.Context, senderNumber, receiverNumber string) (*entity.Account, *entity.Account, error) {
	args := m.Called(ctx, senderNumber, receiverNumber)
	var sender, receiver *entity.Account
	if args.Get(0) != nil {
		sender = args.Get(0).(*entity.Account)
	}
	if args.Get(1) != nil {
		receiver = args.Get(1).(*entity.Account)
	}
	return sender, receiver, args.Error(2)
}

func (m *MockAccountRepository) Exists(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Debit(ctx context.Context, accountNumber string, amountCents int64) error {
	args := m.Called(ctx, accountNumber, amountCents)
	return args.Error(0)
}

func (m *MockAccountRepository) Credit(ctx context.Context, accountNumber string, amountCents int64) error {
	args := m.Called(ctx, accountNumber, amountCents)
	return args.Error(0)
}

// MockInviteRepository mocks persistence.InviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) TryConsume(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteRepository) Exists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *entity.InviteCode) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

// MockTransferRepository mocks persistence.TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Append(ctx context.Context, record *entity.TransferRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*entity.TransferRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransferRecord), args.Error(1)
}

func (m *MockTransferRepository) ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountNumber string) ([]*entity.TransferRecord, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TransferRecord), args.Error(1)
}

// MockCardRepository mocks persistence.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) GetByAccountID(ctx context.Context, accountID uint64) (*entity.Card, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Card), args.Error(1)
}

// fakeUnitOfWork wires the repository mocks behind the UnitOfWork port and
// tracks transaction outcomes so tests can assert commit/rollback behavior
type fakeUnitOfWork struct {
	accounts  *MockAccountRepository
	invites   *MockInviteRepository
	transfers *MockTransferRepository
	cards     *MockCardRepository

	beginErr  error
	commitErr error

	begins    int
	commits   int
	rollbacks int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		accounts:  new(MockAccountRepository),
		invites:   new(MockInviteRepository),
		transfers: new(MockTransferRepository),
		cards:     new(MockCardRepository),
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if f.beginErr != nil {
		return ctx, f.beginErr
	}
	f.begins++
	return ctx, nil
}

func (f *fakeUnitOfWork) BeginReadOnly(ctx context.Context) (context.Context, error) {
	return f.Begin(ctx)
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits++
	return nil
}

func (f *fakeUnitOfWork) Rollback(ctx context.Context) error {
	f.rollbacks++
	return nil
}

func (f *fakeUnitOfWork) AccountRepository(ctx context.Context) persistence.AccountRepository {
	return f.accounts
}

func (f *fakeUnitOfWork) InviteRepository(ctx context.Context) persistence.InviteRepository {
	return f.invites
}

func (f *fakeUnitOfWork) TransferRepository(ctx context.Context) persistence.TransferRepository {
	return f.transfers
}

func (f *fakeUnitOfWork) CardRepository(ctx context.Context) persistence.CardRepository {
	return f.cards
}

// stubTimeProvider pins the clock for deterministic engine tests
type stubTimeProvider struct {
	now time.Time
}

func newStubTimeProvider() *stubTimeProvider {
	return &stubTimeProvider{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (p *stubTimeProvider) Now() time.Time                  { return p.now }
func (p *stubTimeProvider) Since(t time.Time) time.Duration { return p.now.Sub(t) }
func (p *stubTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// noopLogger keeps engine tests quiet
type noopLogger struct {
	level coreport.LogLevel
}

func (l *noopLogger) SetLevel(level coreport.LogLevel)       { l.level = level }
func (l *noopLogger) GetLevel() coreport.LogLevel            { return l.level }
func (l *noopLogger) Debug(message string, f map[string]any) {}
func (l *noopLogger) Info(message string, f map[string]any)  {}
func (l *noopLogger) Warn(message string, f map[string]any)  {}
func (l *noopLogger) Error(message string, f map[string]any) {}
func (l *noopLogger) Flush() error                           { return nil }

func newTestEngine(uow *fakeUnitOfWork) (*Engine, *stubTimeProvider) {
	tp := newStubTimeProvider()
	return NewEngine(uow, tp, &noopLogger{}), tp
}

// mustAccount builds an account for test fixtures
func mustAccount(number, firstName, lastName, balance string, tp coreport.TimeProvider) *entity.Account {
	account, err := entity.NewAccount(number, firstName, lastName, "other", "hash", balance, tp)
	if err != nil {
		panic(err)
	}
	return account
}
