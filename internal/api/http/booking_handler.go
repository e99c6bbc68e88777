package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/service"
)

type BookingHandler struct {
	bookings service.BookingService
	payments service.PaymentService
}

func NewBookingHandler(bookings service.BookingService, payments service.PaymentService) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments}
}

type createBookingRequest struct {
	RoomID         int32  `json:"room_id"`
	CheckInDate    string `json:"check_in_date"` // yyyy-mm-dd
	LeaseType      string `json:"lease_type"`
	UseDeposit     bool   `json:"use_deposit"`
	DiscountAmount int64  `json:"discount_amount"`
	CustomerID     int32  `json:"customer_id"` // manual bookings only
	Notes          string `json:"notes"`
}

func (req *createBookingRequest) toInput() (service.CreateBookingInput, error) {
	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		return service.CreateBookingInput{}, domain.ErrInvalidLeaseParameters
	}
	return service.CreateBookingInput{
		CustomerID:     req.CustomerID,
		RoomID:         req.RoomID,
		CheckInDate:    checkIn,
		LeaseType:      domain.LeaseType(req.LeaseType),
		UseDeposit:     req.UseDeposit,
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
	}, nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}

	booking, redirectURL, err := h.bookings.CreateBooking(r.Context(), actorFrom(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"booking":      booking,
		"redirect_url": redirectURL,
	})
}

func (h *BookingHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.CreateManualBooking(r.Context(), actorFrom(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

type renewBookingRequest struct {
	LeaseType     string `json:"lease_type"`
	CarryDiscount bool   `json:"carry_discount"`
	Notes         string `json:"notes"`
}

func (h *BookingHandler) Renew(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req renewBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookings.RenewBooking(r.Context(), actorFrom(r), id, service.RenewBookingInput{
		LeaseType:     domain.LeaseType(req.LeaseType),
		CarryDiscount: req.CarryDiscount,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookings.CheckIn)
}

func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookings.CheckOut)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor domain.Actor, id int32) (*domain.Booking, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := op(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req cancelBookingRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	booking, err := h.bookings.Cancel(r.Context(), actorFrom(r), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookings.GetBooking(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.GetBookingByCode(r.Context(), actorFrom(r), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	checkIn, inErr := time.Parse("2006-01-02", q.Get("check_in"))
	checkOut, outErr := time.Parse("2006-01-02", q.Get("check_out"))
	if inErr != nil || outErr != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "check_in and check_out must be yyyy-mm-dd"})
		return
	}

	available, err := h.bookings.CheckAvailability(r.Context(), roomID, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room_id":   roomID,
		"available": available,
	})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookings.ListBookings(r.Context(), actorFrom(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
	})
}

func (h *BookingHandler) PayRemainder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payment, redirectURL, err := h.bookings.PayRemainder(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"payment":      payment,
		"redirect_url": redirectURL,
	})
}

func (h *BookingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payments, err := h.payments.ListBookingPayments(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
