package domain

import "time"

// Client represents an identity record. A client owns zero or more accounts;
// deleting a client cascades to its accounts and their transactions.
type Client struct {
	ID        int64
	Name      string
	Email     string // unique
	Password  string // bcrypt hash, never serialized to the wire
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
