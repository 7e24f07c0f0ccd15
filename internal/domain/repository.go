package domain

import "context"

// ClientRepository defines the interface for client persistence operations
type ClientRepository interface {
	// List retrieves every client in insertion order
	List(ctx context.Context) ([]*Client, error)

	// GetByID retrieves a client by its id; ErrNoRecord if absent
	GetByID(ctx context.Context, id int64) (*Client, error)

	// GetByEmail retrieves a client by email; ErrNoRecord if absent
	GetByEmail(ctx context.Context, email string) (*Client, error)

	// Create persists a new client and fills in its id and timestamps
	Create(ctx context.Context, client *Client) error

	// Update persists the mutable fields of an existing client
	Update(ctx context.Context, client *Client) error

	// Delete removes a client; its accounts and their transactions cascade
	Delete(ctx context.Context, id int64) error
}

// AccountRepository defines the interface for account persistence operations.
// Balance is written only through TransactionRepository.CreatePosted.
type AccountRepository interface {
	// List retrieves every account in insertion order
	List(ctx context.Context) ([]*Account, error)

	// GetByID retrieves an account by its id; ErrNoRecord if absent
	GetByID(ctx context.Context, id int64) (*Account, error)

	// GetByNumber retrieves an account by its public 8-digit number;
	// ErrNoRecord if absent
	GetByNumber(ctx context.Context, number int64) (*Account, error)

	// Create persists a new account and fills in its id and timestamps.
	// Returns ErrNumberTaken when the account number is already in use.
	Create(ctx context.Context, account *Account) error

	// Delete removes an account; its transactions cascade
	Delete(ctx context.Context, id int64) error
}

// TransactionRepository defines the interface for transaction persistence
// operations
type TransactionRepository interface {
	// List retrieves every transaction in insertion order
	List(ctx context.Context) ([]*Transaction, error)

	// GetByID retrieves a transaction by its id; ErrNoRecord if absent
	GetByID(ctx context.Context, id int64) (*Transaction, error)

	// CreatePosted persists the transaction row and applies the given
	// absolute balance updates as one atomic unit: all writes commit
	// together or none do. Fills in the transaction's id and timestamp.
	CreatePosted(ctx context.Context, tx *Transaction, updates []BalanceUpdate) error

	// Delete removes a transaction row. Deleting is a pure audit-log edit:
	// it never reverses the balance mutation the row recorded.
	Delete(ctx context.Context, id int64) error
}
