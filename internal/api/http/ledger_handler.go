package http

import (
	"encoding/json"
	"net/http"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/service"
)

type LedgerHandler struct {
	ledger   service.LedgerService
	accounts service.AccountService
}

func NewLedgerHandler(ledger service.LedgerService, accounts service.AccountService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, accounts: accounts}
}

type manualEntryRequest struct {
	Direction  string `json:"direction"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"` // yyyy-mm-dd, defaults to today
	Note       string `json:"note"`
	PropertyID *int32 `json:"property_id,omitempty"`
}

func (h *LedgerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req manualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	date := time.Now()
	if req.Date != "" {
		if parsed, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = parsed
		}
	}

	entry, err := h.ledger.RecordManualEntry(r.Context(), actorFrom(r), service.ManualEntryInput{
		AccountID:  accountID,
		Direction:  domain.EntryDirection(req.Direction),
		Amount:     req.Amount,
		Date:       date,
		Note:       req.Note,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	balance, err := h.ledger.Balance(r.Context(), actorFrom(r), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

func (h *LedgerHandler) PaymentEntry(w http.ResponseWriter, r *http.Request) {
	paymentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.ledger.EntryForPayment(r.Context(), actorFrom(r), paymentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	entries, total, err := h.ledger.ListEntries(r.Context(), actorFrom(r), accountID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
	})
}

type createAccountRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (h *LedgerHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	account, err := h.accounts.CreateAccount(r.Context(), actorFrom(r), req.Name, domain.AccountKind(req.Kind))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *LedgerHandler) ArchiveAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.accounts.ArchiveAccount(r.Context(), actorFrom(r), accountID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
