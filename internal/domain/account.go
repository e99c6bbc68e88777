package domain

import "time"

type AccountKind string

const (
	AccountKindIncome  AccountKind = "INCOME"
	AccountKindExpense AccountKind = "EXPENSE"
	AccountKindSystem  AccountKind = "SYSTEM"
)

type Account struct {
	ID         int32       `json:"id"`
	OwnerID    int32       `json:"owner_id"`
	Name       string      `json:"name"`
	Kind       AccountKind `json:"kind"`
	IsSystem   bool        `json:"is_system"`
	IsArchived bool        `json:"is_archived"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// UsableBy reports whether the account can receive new manual entries or
// serve as a payout source for the given operator.
func (a *Account) UsableBy(operatorID int32) bool {
	return a.OwnerID == operatorID && !a.IsArchived
}

type EntryDirection string

const (
	EntryDirectionIn  EntryDirection = "IN"
	EntryDirectionOut EntryDirection = "OUT"
)

type EntryRefType string

const (
	EntryRefPayment EntryRefType = "PAYMENT"
	EntryRefPayout  EntryRefType = "PAYOUT"
	EntryRefManual  EntryRefType = "MANUAL"
)

// LedgerEntry rows are append-only: never updated or deleted once written.
// Balances are always derived from the full entry history.
type LedgerEntry struct {
	ID         int32          `json:"id"`
	AccountID  int32          `json:"account_id"`
	Direction  EntryDirection `json:"direction"`
	Amount     int64          `json:"amount"`
	Date       time.Time      `json:"date"`
	Note       string         `json:"note"`
	RefType    EntryRefType   `json:"ref_type"`
	RefID      *int32         `json:"ref_id,omitempty"`
	PropertyID *int32         `json:"property_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
