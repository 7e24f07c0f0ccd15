package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/natansalgado/otabank/internal/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number int64) (*domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CreatePosted(ctx context.Context, tx *domain.Transaction, updates []domain.BalanceUpdate) error {
	args := m.Called(ctx, tx, updates)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestAccount(id, number int64, balance string) *domain.Account {
	return &domain.Account{
		ID:       id,
		Number:   number,
		ClientID: 1,
		Balance:  decimal.RequireFromString(balance),
	}
}

func TestAddTransaction_Deposit(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	account := newTestAccount(1, 12345678, "0.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(12345678)).Return(account, nil)

	mockTxRepo.On("CreatePosted", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Type == domain.TypeDeposit &&
			tx.AccountID == int64(1) &&
			tx.AccountToID == nil &&
			tx.Value.Equal(decimal.RequireFromString("200"))
	}), mock.MatchedBy(func(updates []domain.BalanceUpdate) bool {
		// new_balance = old_balance + value
		return len(updates) == 1 &&
			updates[0].AccountID == int64(1) &&
			updates[0].NewBalance.Equal(decimal.RequireFromString("200.00"))
	})).Return(nil)

	tx, err := service.AddTransaction(ctx, AddTransactionInput{
		Account: "12345678",
		Type:    "deposit",
		Value:   "200",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TypeDeposit, tx.Type)
	mockTxRepo.AssertExpectations(t)
}

func TestAddTransaction_DepositNeverFailsFundsCheck(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	// Zero-balance account, deposit far larger than the balance.
	account := newTestAccount(7, 11112222, "0.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(11112222)).Return(account, nil)
	mockTxRepo.On("CreatePosted", ctx, mock.Anything, mock.Anything).Return(nil)

	_, err := service.AddTransaction(ctx, AddTransactionInput{
		Account: "11112222",
		Type:    "deposit",
		Value:   "999999.99",
	})

	require.NoError(t, err)
	mockTxRepo.AssertExpectations(t)
}

func TestAddTransaction_Withdraw(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	account := newTestAccount(1, 12345678, "200.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(12345678)).Return(account, nil)

	mockTxRepo.On("CreatePosted", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Type == domain.TypeWithdraw && tx.Value.Equal(decimal.RequireFromString("50"))
	}), mock.MatchedBy(func(updates []domain.BalanceUpdate) bool {
		// new_balance = old_balance - value
		return len(updates) == 1 &&
			updates[0].NewBalance.Equal(decimal.RequireFromString("150.00"))
	})).Return(nil)

	_, err := service.AddTransaction(ctx, AddTransactionInput{
		Account: "12345678",
		Type:    "withdraw",
		Value:   "50",
	})

	require.NoError(t, err)
	mockTxRepo.AssertExpectations(t)
}

func TestAddTransaction_WithdrawInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	account := newTestAccount(1, 12345678, "50.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(12345678)).Return(account, nil)

	tx, err := service.AddTransaction(ctx, AddTransactionInput{
		Account: "12345678",
		Type:    "withdraw",
		Value:   "100",
	})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	// No mutation on a failed funds check.
	mockTxRepo.AssertNotCalled(t, "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddTransaction_TransferConservesFunds(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	source := newTestAccount(1, 11111111, "150.00")
	target := newTestAccount(2, 22222222, "0.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(11111111)).Return(source, nil)
	mockAccountRepo.On("GetByNumber", ctx, int64(22222222)).Return(target, nil)

	oldTotal := source.Balance.Add(target.Balance)

	mockTxRepo.On("CreatePosted", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Type == domain.TypeTransfer &&
			tx.AccountID == int64(1) &&
			tx.AccountToID != nil && *tx.AccountToID == int64(2)
	}), mock.MatchedBy(func(updates []domain.BalanceUpdate) bool {
		if len(updates) != 2 {
			return false
		}
		newTotal := updates[0].NewBalance.Add(updates[1].NewBalance)
		return updates[0].NewBalance.Equal(decimal.RequireFromString("50.00")) &&
			updates[1].NewBalance.Equal(decimal.RequireFromString("100.00")) &&
			newTotal.Equal(oldTotal)
	})).Return(nil)

	_, err := service.AddTransaction(ctx, AddTransactionInput{
		Account:   "11111111",
		Type:      "transfer",
		ToAccount: "22222222",
		Value:     "100",
	})

	require.NoError(t, err)
	mockTxRepo.AssertExpectations(t)
}

func TestAddTransaction_TransferInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	source := newTestAccount(1, 11111111, "20.00")
	target := newTestAccount(2, 22222222, "0.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(11111111)).Return(source, nil)
	mockAccountRepo.On("GetByNumber", ctx, int64(22222222)).Return(target, nil)

	_, err := service.AddTransaction(ctx, AddTransactionInput{
		Account:   "11111111",
		Type:      "transfer",
		ToAccount: "22222222",
		Value:     "100",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	mockTxRepo.AssertNotCalled(t, "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddTransaction_BalanceInquiry(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	account := newTestAccount(1, 12345678, "321.55")
	mockAccountRepo.On("GetByNumber", ctx, int64(12345678)).Return(account, nil)

	mockTxRepo.On("CreatePosted", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		// The recorded value is the balance at inquiry time.
		return tx.Type == domain.TypeBalance &&
			tx.Value.Equal(decimal.RequireFromString("321.55"))
	}), mock.MatchedBy(func(updates []domain.BalanceUpdate) bool {
		// A balance inquiry never mutates any account.
		return len(updates) == 0
	})).Return(nil)

	tx, err := service.AddTransaction(ctx, AddTransactionInput{
		Account: "12345678",
		Type:    "balance",
	})

	require.NoError(t, err)
	assert.True(t, tx.Value.Equal(account.Balance))
	mockTxRepo.AssertExpectations(t)
}

func TestAddTransaction_ValidationFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   AddTransactionInput
		wantErr *domain.Error
	}{
		{
			name:    "non-numeric account",
			input:   AddTransactionInput{Account: "x", Type: "deposit"},
			wantErr: domain.ErrInvalidAccountNumber,
		},
		{
			name:    "unknown type",
			input:   AddTransactionInput{Account: "12345678", Type: "loan", Value: "10"},
			wantErr: domain.ErrInvalidTransactionType,
		},
		{
			name:    "value not a number",
			input:   AddTransactionInput{Account: "12345678", Type: "deposit", Value: "abc"},
			wantErr: domain.ErrValueNotNumber,
		},
		{
			name:    "missing value",
			input:   AddTransactionInput{Account: "12345678", Type: "withdraw"},
			wantErr: domain.ErrValueNotNumber,
		},
		{
			name:    "negative value",
			input:   AddTransactionInput{Account: "12345678", Type: "deposit", Value: "-10"},
			wantErr: domain.ErrNegativeValue,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockAccountRepo := new(MockAccountRepository)
			mockTxRepo := new(MockTransactionRepository)
			service := NewLedgerService(mockAccountRepo, mockTxRepo)

			tx, err := service.AddTransaction(ctx, tc.input)

			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tc.wantErr)
			// Validation fails before any store access or mutation.
			mockAccountRepo.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
			mockTxRepo.AssertNotCalled(t, "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAddTransaction_AccountResolutionFailures(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	source := newTestAccount(1, 11111111, "500.00")
	mockAccountRepo.On("GetByNumber", ctx, int64(11111111)).Return(source, nil)
	mockAccountRepo.On("GetByNumber", ctx, int64(99999999)).Return(nil, domain.ErrNoRecord)

	// Unknown source account.
	_, err := service.AddTransaction(ctx, AddTransactionInput{
		Account: "99999999",
		Type:    "deposit",
		Value:   "10",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	// Transfer without a declared target.
	_, err = service.AddTransaction(ctx, AddTransactionInput{
		Account: "11111111",
		Type:    "transfer",
		Value:   "10",
	})
	assert.ErrorIs(t, err, domain.ErrTransferRequiresTarget)

	// Transfer with a malformed target number.
	_, err = service.AddTransaction(ctx, AddTransactionInput{
		Account:   "11111111",
		Type:      "transfer",
		ToAccount: "not-a-number",
		Value:     "10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetAccountNumber)

	// Transfer to an unknown target.
	_, err = service.AddTransaction(ctx, AddTransactionInput{
		Account:   "11111111",
		Type:      "transfer",
		ToAccount: "99999999",
		Value:     "10",
	})
	assert.ErrorIs(t, err, domain.ErrTargetAccountNotFound)

	mockTxRepo.AssertNotCalled(t, "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindTransaction(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	stored := &domain.Transaction{ID: 42, AccountID: 1, Type: domain.TypeDeposit, Value: decimal.RequireFromString("200.00")}
	mockTxRepo.On("GetByID", ctx, int64(42)).Return(stored, nil)

	// Reads are idempotent: two lookups without intervening writes match.
	first, err := service.FindTransaction(ctx, "42")
	require.NoError(t, err)
	second, err := service.FindTransaction(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = service.FindTransaction(ctx, "forty-two")
	assert.ErrorIs(t, err, domain.ErrInvalidIDFormat)

	mockTxRepo.On("GetByID", ctx, int64(7)).Return(nil, domain.ErrNoRecord)
	_, err = service.FindTransaction(ctx, "7")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	stored := &domain.Transaction{ID: 42, AccountID: 1, Type: domain.TypeWithdraw, Value: decimal.RequireFromString("10.00")}
	mockTxRepo.On("GetByID", ctx, int64(42)).Return(stored, nil).Once()
	mockTxRepo.On("Delete", ctx, int64(42)).Return(nil).Once()

	removed, err := service.DeleteTransaction(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, stored, removed)

	// A second delete of the same id reports the record as missing.
	mockTxRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrNoRecord).Once()
	_, err = service.DeleteTransaction(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = service.DeleteTransaction(ctx, "1.5x")
	assert.ErrorIs(t, err, domain.ErrInvalidIDFormat)

	mockTxRepo.AssertExpectations(t)
}

func TestFindAll(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)
	service := NewLedgerService(mockAccountRepo, mockTxRepo)

	stored := []*domain.Transaction{
		{ID: 1, AccountID: 1, Type: domain.TypeDeposit, Value: decimal.RequireFromString("200.00")},
		{ID: 2, AccountID: 1, Type: domain.TypeWithdraw, Value: decimal.RequireFromString("50.00")},
	}
	mockTxRepo.On("List", ctx).Return(stored, nil)

	transactions, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, transactions)
}
