package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/natansalgado/otabank/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for a violated unique
// constraint, used to detect account number collisions.
const uniqueViolation = "23505"

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// List retrieves every account in insertion order
func (r *accountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT id, number, client_id, balance, created_at, updated_at
		FROM accounts
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// GetByID retrieves an account by its id
func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `
		SELECT id, number, client_id, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// GetByNumber retrieves an account by its public 8-digit number
func (r *accountRepository) GetByNumber(ctx context.Context, number int64) (*domain.Account, error) {
	query := `
		SELECT id, number, client_id, balance, created_at, updated_at
		FROM accounts
		WHERE number = $1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, number).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}

	return account, nil
}

// Create persists a new account. A unique-constraint violation on the number
// column surfaces as domain.ErrNumberTaken so the caller can retry with a
// fresh number.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (number, client_id, balance)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		account.Number,
		account.ClientID,
		account.Balance.StringFixed(2),
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrNumberTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// Delete removes an account; its transactions cascade
func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNoRecord
	}

	return nil
}

// scanAccount reads one account row; the balance DECIMAL is scanned as a
// string and parsed into a decimal
func scanAccount(scan func(dest ...any) error) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	if err := scan(
		&account.ID,
		&account.Number,
		&account.ClientID,
		&balanceStr,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}
