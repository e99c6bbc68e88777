package gateway

import (
	"context"
	"fmt"
	"sync"
)

// MockGateway is a local stand-in for the real payment gateway. It hands
// out redirect URLs under the configured base URL and remembers the
// orders it has seen, which is enough for development and tests.
type MockGateway struct {
	baseURL string

	mu     sync.Mutex
	orders map[string]Order
}

func NewMockGateway(baseURL string) *MockGateway {
	return &MockGateway{
		baseURL: baseURL,
		orders:  make(map[string]Order),
	}
}

func (g *MockGateway) CreateOrder(ctx context.Context, order Order) (string, error) {
	if order.OrderID == "" {
		return "", fmt.Errorf("order id is required")
	}
	if order.Amount <= 0 {
		return "", fmt.Errorf("order amount must be positive")
	}

	g.mu.Lock()
	g.orders[order.OrderID] = order
	g.mu.Unlock()

	return fmt.Sprintf("%s/pay/%s", g.baseURL, order.OrderID), nil
}

// GetOrder returns a previously created order, for tests.
func (g *MockGateway) GetOrder(orderID string) (Order, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[orderID]
	return order, ok
}
