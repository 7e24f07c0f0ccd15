package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger transaction
type TransactionType string

const (
	TypeBalance  TransactionType = "balance"
	TypeTransfer TransactionType = "transfer"
	TypeWithdraw TransactionType = "withdraw"
	TypeDeposit  TransactionType = "deposit"
)

// IsValid reports whether t is one of the four recognized transaction kinds
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeBalance, TypeTransfer, TypeWithdraw, TypeDeposit:
		return true
	}
	return false
}

// Transaction represents a single accepted ledger event against one or two
// accounts. Rows are append-only: created when a transaction is applied,
// deletable by id, never updated.
type Transaction struct {
	ID          int64
	AccountID   int64  // source account
	AccountToID *int64 // target account, set only for transfers
	Type        TransactionType
	Value       decimal.Decimal // for balance inquiries: the balance at call time
	CreatedAt   time.Time
}

// Validate ensures the transaction adheres to domain rules.
// Invariant: AccountToID is present if and only if the type is transfer.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}
	if t.Type == TypeTransfer && t.AccountToID == nil {
		return ErrTransferRequiresTarget
	}
	if t.Type != TypeTransfer && t.AccountToID != nil {
		return ErrInvalidTransactionType
	}
	if t.Value.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}
