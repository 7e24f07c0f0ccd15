package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account number range: publicly-facing 8-digit identifiers, distinct from
// the database id.
const (
	AccountNumberMin int64 = 10000000
	AccountNumberMax int64 = 99999999
)

// Account represents a balance-holding entity owned by one client.
// Balance is DECIMAL(10,2) in the store and is mutated exclusively by the
// ledger engine's apply step.
type Account struct {
	ID        int64
	Number    int64 // unique 8-digit public identifier
	ClientID  int64
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceUpdate carries the new absolute balance for one account, computed by
// the ledger engine from the balances read at validation time.
type BalanceUpdate struct {
	AccountID  int64
	NewBalance decimal.Decimal
}
