package http

import (
	"github.com/gorilla/mux"

	"kostpay-backend/internal/security"
)

// RegisterRoutes wires all handlers onto the router. The gateway
// notification endpoint is registered outside the authenticated
// subrouter because the gateway authenticates with a signature key
// instead of a bearer token.
func RegisterRoutes(
	router *mux.Router,
	tokens security.TokenManager,
	bookings *BookingHandler,
	payments *PaymentHandler,
	ledger *LedgerHandler,
	payouts *PayoutHandler,
	bankAccounts *BankAccountHandler,
	notifications *NotificationHandler,
) {
	router.HandleFunc("/api/v1/payments/notification", payments.HandleNotification).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/bookings", bookings.Create).Methods("POST")
	api.HandleFunc("/bookings/manual", bookings.CreateManual).Methods("POST")
	api.HandleFunc("/bookings", bookings.List).Methods("GET")
	api.HandleFunc("/bookings/code/{code}", bookings.GetByCode).Methods("GET")
	api.HandleFunc("/bookings/{id}", bookings.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}/renew", bookings.Renew).Methods("POST")
	api.HandleFunc("/bookings/{id}/check-in", bookings.CheckIn).Methods("POST")
	api.HandleFunc("/bookings/{id}/check-out", bookings.CheckOut).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", bookings.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/payments", bookings.PayRemainder).Methods("POST")
	api.HandleFunc("/bookings/{id}/payments", bookings.ListPayments).Methods("GET")

	api.HandleFunc("/rooms/{id}/availability", bookings.Availability).Methods("GET")

	api.HandleFunc("/payments", payments.List).Methods("GET")
	api.HandleFunc("/payments/{id}/entry", ledger.PaymentEntry).Methods("GET")

	api.HandleFunc("/accounts", ledger.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts", ledger.ListAccounts).Methods("GET")
	api.HandleFunc("/accounts/{id}", ledger.ArchiveAccount).Methods("DELETE")
	api.HandleFunc("/accounts/{id}/entries", ledger.CreateEntry).Methods("POST")
	api.HandleFunc("/accounts/{id}/entries", ledger.ListEntries).Methods("GET")
	api.HandleFunc("/accounts/{id}/balance", ledger.Balance).Methods("GET")

	api.HandleFunc("/payouts", payouts.Request).Methods("POST")
	api.HandleFunc("/payouts", payouts.List).Methods("GET")
	api.HandleFunc("/payouts/balance", payouts.Balance).Methods("GET")
	api.HandleFunc("/payouts/{id}", payouts.Get).Methods("GET")
	api.HandleFunc("/payouts/{id}/approve", payouts.Approve).Methods("POST")
	api.HandleFunc("/payouts/{id}/reject", payouts.Reject).Methods("POST")

	api.HandleFunc("/bank-accounts", bankAccounts.Submit).Methods("POST")
	api.HandleFunc("/bank-accounts", bankAccounts.List).Methods("GET")
	api.HandleFunc("/bank-accounts/{id}/approve", bankAccounts.Approve).Methods("POST")
	api.HandleFunc("/bank-accounts/{id}/reject", bankAccounts.Reject).Methods("POST")
	api.HandleFunc("/bank-accounts/{id}", bankAccounts.Delete).Methods("DELETE")

	api.HandleFunc("/notifications", notifications.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods("POST")
}
