package domain

import "errors"

// Sentinel errors shared by repositories, services and the API layer.
// Handlers map these to HTTP status codes; nothing inside the engine
// swallows them.
var (
	ErrNotFound               = errors.New("entity not found")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrRoomUnavailable        = errors.New("room is not available for the requested period")
	ErrInvalidLeaseParameters = errors.New("invalid lease parameters")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrMissingProof           = errors.New("payout approval requires proof attachments")
	ErrMissingReason          = errors.New("rejection requires a reason")
	ErrAmountMismatch         = errors.New("amount does not match expected amount")
	ErrInvalidAccount         = errors.New("account is archived, system-owned or belongs to another operator")
	ErrAlreadyProcessed       = errors.New("payment already processed")
	ErrNoApprovedBankAccount  = errors.New("no approved bank account for operator")
	ErrPendingBankAccount     = errors.New("operator already has a pending bank account request")
)
