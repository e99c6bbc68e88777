package domain

import "time"

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "PENDING"
	PayoutStatusApproved PayoutStatus = "APPROVED"
	PayoutStatusRejected PayoutStatus = "REJECTED"
)

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutStatusPending: {PayoutStatusApproved, PayoutStatusRejected},
}

func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutStatusApproved || s == PayoutStatusRejected
}

type Payout struct {
	ID              int32        `json:"id"`
	OperatorID      int32        `json:"operator_id"`
	AccountID       int32        `json:"account_id"` // source ledger account, the operator's sales account
	BankAccountID   int32        `json:"bank_account_id"`
	Amount          int64        `json:"amount"`
	Status          PayoutStatus `json:"status"`
	Notes           string       `json:"notes"`
	ProofURLs       []string     `json:"proof_urls,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	ApprovedBy      *int32       `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
