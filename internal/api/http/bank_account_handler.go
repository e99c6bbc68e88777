package http

import (
	"encoding/json"
	"net/http"

	"kostpay-backend/internal/service"
)

type BankAccountHandler struct {
	bankAccounts service.BankAccountService
}

func NewBankAccountHandler(bankAccounts service.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{bankAccounts: bankAccounts}
}

type submitBankAccountRequest struct {
	BankCode      string `json:"bank_code"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
}

func (h *BankAccountHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	account, err := h.bankAccounts.Submit(r.Context(), actorFrom(r), service.SubmitBankAccountInput{
		BankCode:      req.BankCode,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		HolderName:    req.HolderName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *BankAccountHandler) Approve(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	account, err := h.bankAccounts.Approve(r.Context(), actorFrom(r), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type rejectBankAccountRequest struct {
	Reason string `json:"reason"`
}

func (h *BankAccountHandler) Reject(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req rejectBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	account, err := h.bankAccounts.Reject(r.Context(), actorFrom(r), accountID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *BankAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.bankAccounts.Delete(r.Context(), actorFrom(r), accountID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.bankAccounts.ListBankAccounts(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
