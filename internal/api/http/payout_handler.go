package http

import (
	"encoding/json"
	"net/http"

	"kostpay-backend/internal/service"
)

type PayoutHandler struct {
	payouts service.PayoutService
}

func NewPayoutHandler(payouts service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payouts: payouts}
}

type requestPayoutRequest struct {
	BankAccountID int32  `json:"bank_account_id"`
	Amount        int64  `json:"amount"`
	Notes         string `json:"notes"`
}

func (h *PayoutHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req requestPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	payout, err := h.payouts.RequestPayout(r.Context(), actorFrom(r), req.BankAccountID, req.Amount, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payout)
}

type approvePayoutRequest struct {
	ProofURLs []string `json:"proof_urls"`
}

func (h *PayoutHandler) Approve(w http.ResponseWriter, r *http.Request) {
	payoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req approvePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	payout, err := h.payouts.ApprovePayout(r.Context(), actorFrom(r), payoutID, req.ProofURLs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}

type rejectPayoutRequest struct {
	Reason string `json:"reason"`
}

func (h *PayoutHandler) Reject(w http.ResponseWriter, r *http.Request) {
	payoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req rejectPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	payout, err := h.payouts.RejectPayout(r.Context(), actorFrom(r), payoutID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}

func (h *PayoutHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.payouts.AvailableBalance(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (h *PayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	payoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payout, err := h.payouts.GetPayout(r.Context(), actorFrom(r), payoutID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}

func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	payouts, total, err := h.payouts.ListPayouts(r.Context(), actorFrom(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payouts": payouts,
		"total":   total,
	})
}
