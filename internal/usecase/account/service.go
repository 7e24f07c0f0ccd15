package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/natansalgado/otabank/internal/domain"
)

// maxNumberAttempts bounds the retry loop for account number generation; with
// ~90 million candidate numbers a handful of attempts is plenty.
const maxNumberAttempts = 5

// AccountService handles account record management. Balances are read-only
// here; only the ledger engine's apply step mutates them.
type AccountService struct {
	AccountRepo domain.AccountRepository
	ClientRepo  domain.ClientRepository

	// generateNumber produces a candidate 8-digit account number;
	// replaceable in tests
	generateNumber func() int64
}

// NewAccountService creates a new AccountService instance
func NewAccountService(accountRepo domain.AccountRepository, clientRepo domain.ClientRepository) *AccountService {
	return &AccountService{
		AccountRepo: accountRepo,
		ClientRepo:  clientRepo,
		generateNumber: func() int64 {
			return domain.AccountNumberMin + rand.Int63n(domain.AccountNumberMax-domain.AccountNumberMin)
		},
	}
}

// FindAll returns every account
func (s *AccountService) FindAll(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.AccountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// FindAccount looks up one account by its id
func (s *AccountService) FindAccount(ctx context.Context, id string) (*domain.Account, error) {
	accountID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// AddAccount creates an account for an existing client with a zero balance
// and a fresh unique 8-digit number. Number generation retries on collision:
// the unique constraint on accounts.number is the source of truth, so two
// concurrent creations can never both keep the same number.
func (s *AccountService) AddAccount(ctx context.Context, clientID string) (*domain.Account, error) {
	id, err := parseInteger(clientID)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	if _, err := s.ClientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		account := &domain.Account{
			Number:   s.generateNumber(),
			ClientID: id,
			Balance:  decimal.Zero,
		}

		err := s.AccountRepo.Create(ctx, account)
		if errors.Is(err, domain.ErrNumberTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}

		return account, nil
	}

	return nil, fmt.Errorf("failed to allocate a unique account number after %d attempts", maxNumberAttempts)
}

// DeleteAccount removes an account and returns the removed record; its
// transactions cascade with it
func (s *AccountService) DeleteAccount(ctx context.Context, id string) (*domain.Account, error) {
	accountID, err := parseInteger(id)
	if err != nil {
		return nil, domain.ErrInvalidIDFormat
	}

	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := s.AccountRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	return account, nil
}

func parseInteger(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
