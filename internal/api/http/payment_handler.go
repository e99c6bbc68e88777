package http

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/service"
)

type PaymentHandler struct {
	payments  service.PaymentService
	serverKey string
}

func NewPaymentHandler(payments service.PaymentService, serverKey string) *PaymentHandler {
	return &PaymentHandler{payments: payments, serverKey: serverKey}
}

type paymentNotification struct {
	OrderID         string `json:"order_id"`
	Status          string `json:"transaction_status"`
	Amount          int64  `json:"gross_amount"`
	TransactionTime string `json:"transaction_time"` // RFC3339
	Signature       string `json:"signature_key"`
}

// signature is sha512(orderID + amount + serverKey), the scheme the
// gateway signs its notifications with.
func (h *PaymentHandler) signature(orderID string, amount int64) string {
	sum := sha512.Sum512([]byte(fmt.Sprintf("%s%d%s", orderID, amount, h.serverKey)))
	return hex.EncodeToString(sum[:])
}

// HandleNotification is the gateway webhook. It is deliberately
// idempotent: redelivered notifications for a terminal payment are
// acknowledged with 200 so the gateway stops retrying.
func (h *PaymentHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	var n paymentNotification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification body"})
		return
	}

	expected := h.signature(n.OrderID, n.Amount)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.Signature)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid signature"})
		return
	}

	var status domain.PaymentStatus
	switch n.Status {
	case "settlement", "capture":
		status = domain.PaymentStatusSuccess
	case "deny", "cancel", "failure":
		status = domain.PaymentStatusFailed
	case "expire":
		status = domain.PaymentStatusExpired
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown transaction status"})
		return
	}

	txTime := time.Now()
	if n.TransactionTime != "" {
		if parsed, err := time.Parse(time.RFC3339, n.TransactionTime); err == nil {
			txTime = parsed
		}
	}

	err := h.payments.HandleNotification(r.Context(), n.OrderID, status, n.Amount, txTime)
	if errors.Is(err, domain.ErrAlreadyProcessed) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	payments, total, err := h.payments.ListPayments(r.Context(), actorFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"total":    total,
	})
}
