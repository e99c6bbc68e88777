package domain

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

// Actor is the authenticated caller as presented by the identity layer.
// The engine trusts it and performs ownership checks against it.
type Actor struct {
	UserID     int32 `json:"user_id"`
	Role       Role  `json:"role"`
	OperatorID int32 `json:"operator_id"`
}

// IsStaff reports whether the actor may perform operator-side operations
// such as manual bookings, check-ins and payout requests.
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleOperator || a.Role == RoleAdmin
}

// Owns is the single ownership predicate used by every mutating
// operation that touches operator-scoped data.
func (a Actor) Owns(operatorID int32) bool {
	return a.OperatorID == operatorID
}
