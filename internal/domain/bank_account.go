package domain

import "time"

type BankAccountStatus string

const (
	BankAccountStatusPending  BankAccountStatus = "PENDING"
	BankAccountStatusApproved BankAccountStatus = "APPROVED"
	BankAccountStatusRejected BankAccountStatus = "REJECTED"
)

type BankAccount struct {
	ID              int32             `json:"id"`
	OperatorID      int32             `json:"operator_id"`
	BankCode        string            `json:"bank_code"`
	BankName        string            `json:"bank_name"`
	AccountNumber   string            `json:"account_number"`
	HolderName      string            `json:"holder_name"`
	Status          BankAccountStatus `json:"status"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	ApprovedBy      *int32            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Deletable reports whether the bank account may be removed by its
// operator. An APPROVED account must be rejected or replaced first.
func (b *BankAccount) Deletable() bool {
	return b.Status != BankAccountStatusApproved
}
