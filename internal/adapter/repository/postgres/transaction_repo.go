package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/natansalgado/otabank/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// List retrieves every transaction in insertion order
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, account_to_id, type, value, created_at
		FROM transactions
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// GetByID retrieves a transaction by its id
func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `
		SELECT id, account_id, account_to_id, type, value, created_at
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("failed to get transaction by id: %w", err)
	}

	return tx, nil
}

// CreatePosted applies the balance updates and inserts the transaction row in
// a single database transaction: all writes commit together or none do. This
// is the only code path that writes accounts.balance.
func (r *transactionRepository) CreatePosted(ctx context.Context, tx *domain.Transaction, updates []domain.BalanceUpdate) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	updateQuery := `
		UPDATE accounts
		SET balance = $1, updated_at = now()
		WHERE id = $2
	`

	for _, update := range updates {
		if _, err := dbTx.ExecContext(ctx, updateQuery,
			update.NewBalance.StringFixed(2),
			update.AccountID,
		); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}
	}

	insertQuery := `
		INSERT INTO transactions (account_id, account_to_id, type, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	var accountToID sql.NullInt64
	if tx.AccountToID != nil {
		accountToID = sql.NullInt64{Int64: *tx.AccountToID, Valid: true}
	}

	if err := dbTx.QueryRowContext(ctx, insertQuery,
		tx.AccountID,
		accountToID,
		string(tx.Type),
		tx.Value.StringFixed(2),
	).Scan(&tx.ID, &tx.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction row without touching account balances
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM transactions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
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

// scanTransaction reads one transaction row; account_to_id is nullable and
// value DECIMAL is scanned as a string
func scanTransaction(scan func(dest ...any) error) (*domain.Transaction, error) {
	var tx domain.Transaction
	var accountToID sql.NullInt64
	var typeStr, valueStr string

	if err := scan(
		&tx.ID,
		&tx.AccountID,
		&accountToID,
		&typeStr,
		&valueStr,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = domain.TransactionType(typeStr)
	if accountToID.Valid {
		tx.AccountToID = &accountToID.Int64
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse value: %w", err)
	}
	tx.Value = value

	return &tx, nil
}
