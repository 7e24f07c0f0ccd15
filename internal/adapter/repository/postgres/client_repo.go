package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/natansalgado/otabank/internal/domain"
)

// clientRepository implements domain.ClientRepository
type clientRepository struct {
	db *DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *DB) domain.ClientRepository {
	return &clientRepository{db: db}
}

// List retrieves every client in insertion order
func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, name, email, password, phone, address, created_at, updated_at
		FROM clients
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

// GetByID retrieves a client by its id
func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `
		SELECT id, name, email, password, phone, address, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("failed to get client by id: %w", err)
	}

	return client, nil
}

// GetByEmail retrieves a client by email
func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `
		SELECT id, name, email, password, phone, address, created_at, updated_at
		FROM clients
		WHERE email = $1
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, email).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRecord
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}

	return client, nil
}

// Create persists a new client
func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (name, email, password, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		client.Name,
		client.Email,
		client.Password,
		client.Phone,
		client.Address,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// Update persists the mutable fields of an existing client
func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $1, email = $2, password = $3, phone = $4, address = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		client.Name,
		client.Email,
		client.Password,
		client.Phone,
		client.Address,
		client.ID,
	).Scan(&client.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNoRecord
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}

// Delete removes a client; accounts and their transactions cascade
func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
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

// scanClient reads one client row
func scanClient(scan func(dest ...any) error) (*domain.Client, error) {
	var client domain.Client

	if err := scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Password,
		&client.Phone,
		&client.Address,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &client, nil
}
