// Package gateway adapts the external payment gateway. The engine only
// needs outbound order creation; results come back through the webhook
// handled by the payment service.
package gateway

import "context"

// Order is the gateway's view of a payment to collect.
type Order struct {
	OrderID string
	Amount  int64
}

// PaymentGateway creates orders at the external gateway and returns the
// redirect URL the customer completes payment at.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, order Order) (string, error)
}
