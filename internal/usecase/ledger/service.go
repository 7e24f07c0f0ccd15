package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/natansalgado/otabank/internal/domain"
)

// AddTransactionInput represents a raw transaction request. Account numbers
// and the value arrive as strings since the wire format accepts both JSON
// numbers and numeric strings; the transport normalizes them before calling
// the engine.
type AddTransactionInput struct {
	Account   string // source account number
	Type      string
	ToAccount string // target account number, transfers only
	Value     string // required for every type except balance
}

// LedgerService is the transaction engine: it validates transaction requests,
// resolves the involved accounts, enforces the funds-sufficiency invariant and
// applies balance changes atomically together with the transaction record.
// It is the sole owner of the rule that a balance never goes negative as the
// result of a withdrawal or outbound transfer.
type LedgerService struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *LedgerService {
	return &LedgerService{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}

// plan is an applicable transaction: the outcome of a fully validated request,
// carrying the resolved accounts and the exact balance writes to perform.
// Building a plan has no side effects; Apply consumes it in one atomic step.
type plan struct {
	txType  domain.TransactionType
	source  *domain.Account
	target  *domain.Account
	value   decimal.Decimal // recorded on the transaction row
	updates []domain.BalanceUpdate
}

// AddTransaction validates a transaction request and, on success, applies it:
// balance updates and the transaction row are persisted as one atomic unit.
// Every business failure comes back as a typed *domain.Error with no side
// effects; the caller receives exactly one outcome per call.
func (s *LedgerService) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	p, err := s.planTransaction(ctx, input)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		AccountID: p.source.ID,
		Type:      p.txType,
		Value:     p.value,
	}
	if p.target != nil {
		tx.AccountToID = &p.target.ID
	}

	if err := s.TransactionRepo.CreatePosted(ctx, tx, p.updates); err != nil {
		return nil, fmt.Errorf("failed to apply transaction: %w", err)
	}

	return tx, nil
}

// planTransaction runs the validation pipeline in order, failing fast on the
// first violation:
//  1. source account number parses as an integer
//  2. type is one of the four recognized kinds
//  3. value parses as a number and is not negative (required unless the type
//     is balance)
//  4. source account exists by number
//  5. for transfers: target declared, parseable and existing by number
//
// then applies the per-type business rule and returns the applicable plan.
func (s *LedgerService) planTransaction(ctx context.Context, input AddTransactionInput) (*plan, error) {
	sourceNumber, err := parseInteger(input.Account)
	if err != nil {
		return nil, domain.ErrInvalidAccountNumber
	}

	txType := domain.TransactionType(input.Type)
	if !txType.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	var value decimal.Decimal
	if input.Value != "" {
		value, err = decimal.NewFromString(strings.TrimSpace(input.Value))
		if err != nil {
			return nil, domain.ErrValueNotNumber
		}
		if value.IsNegative() {
			return nil, domain.ErrNegativeValue
		}
	} else if txType != domain.TypeBalance {
		return nil, domain.ErrValueNotNumber
	}

	source, err := s.AccountRepo.GetByNumber(ctx, sourceNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve source account: %w", err)
	}

	var target *domain.Account
	if txType == domain.TypeTransfer {
		if input.ToAccount == "" {
			return nil, domain.ErrTransferRequiresTarget
		}

		targetNumber, err := parseInteger(input.ToAccount)
		if err != nil {
			return nil, domain.ErrInvalidTargetAccountNumber
		}

		target, err = s.AccountRepo.GetByNumber(ctx, targetNumber)
		if err != nil {
			if errors.Is(err, domain.ErrNoRecord) {
				return nil, domain.ErrTargetAccountNotFound
			}
			return nil, fmt.Errorf("failed to resolve target account: %w", err)
		}
	}

	p := &plan{txType: txType, source: source, target: target, value: value}

	switch txType {
	case domain.TypeBalance:
		// No mutation; the recorded value is the balance at inquiry time.
		p.value = source.Balance
	case domain.TypeDeposit:
		// A deposit is a withdrawal of a negated amount, so it never hits
		// the funds check.
		p.updates = performTransaction(source, nil, value.Neg())
	case domain.TypeWithdraw:
		if source.Balance.LessThan(value) {
			return nil, domain.ErrInsufficientFunds
		}
		p.updates = performTransaction(source, nil, value)
	case domain.TypeTransfer:
		if source.Balance.LessThan(value) {
			return nil, domain.ErrInsufficientFunds
		}
		p.updates = performTransaction(source, target, value)
	}

	return p, nil
}

// performTransaction computes the balance writes for one apply step from the
// balances read at validation time. Sign convention: the source loses amount
// (new = old - amount) and the target, when present, gains it; callers pass a
// positive amount for withdraw/transfer-out and a negative one for deposit.
func performTransaction(source, target *domain.Account, amount decimal.Decimal) []domain.BalanceUpdate {
	updates := []domain.BalanceUpdate{{
		AccountID:  source.ID,
		NewBalance: source.Balance.Sub(amount),
	}}

	if target != nil {
		updates = append(updates, domain.BalanceUpdate{
			AccountID:  target.ID,
			NewBalance: target.Balance.Add(amount),
		})
	}

	return updates
}

// FindAll returns every transaction record in insertion order
func (s *LedgerService) FindAll(ctx context.Context) ([]*domain.Transaction, error) {
	transactions, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

// FindTransaction looks up one transaction by its id
func (s *LedgerService) FindTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	txID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	tx, err := s.TransactionRepo.GetByID(ctx, txID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// DeleteTransaction removes a transaction row and returns the removed record.
// Deleting is a pure audit-log edit: the balance mutation the row recorded is
// not reversed.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	txID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	tx, err := s.TransactionRepo.GetByID(ctx, txID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.TransactionRepo.Delete(ctx, txID); err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return tx, nil
}

// parseInteger parses an id or account number in its wire form
func parseInteger(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
