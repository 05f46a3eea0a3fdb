package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
	ledgerService  *service.LedgerService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService, ledgerService *service.LedgerService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, ledgerService: ledgerService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	HelicopterID string    `json:"helicopter_id"`
	ExperienceID string    `json:"experience_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Passengers   int       `json:"passengers"`
	RoundTrip    bool      `json:"round_trip"`
	FlightDate   time.Time `json:"flight_date"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	HelicopterID  string    `json:"helicopter_id"`
	PilotID       string    `json:"pilot_id,omitempty"`
	ExperienceID  string    `json:"experience_id,omitempty"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Passengers    int       `json:"passengers"`
	RoundTrip     bool      `json:"round_trip"`
	FlightDate    time.Time `json:"flight_date"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	Paid          bool      `json:"paid"`
	PaymentMethod string    `json:"payment_method,omitempty"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		HelicopterID:  b.HelicopterID,
		PilotID:       b.PilotID,
		ExperienceID:  b.ExperienceID,
		From:          b.FromCode,
		To:            b.ToCode,
		Passengers:    b.Passengers,
		RoundTrip:     b.RoundTrip,
		FlightDate:    b.FlightDate,
		Price:         b.Price,
		Status:        string(b.Status),
		Paid:          b.Paid,
		PaymentMethod: string(b.PaymentMethod),
	}
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		UserID:       callerID(c),
		HelicopterID: req.HelicopterID,
		ExperienceID: req.ExperienceID,
		FromCode:     req.From,
		ToCode:       req.To,
		Passengers:   req.Passengers,
		RoundTrip:    req.RoundTrip,
		FlightDate:   req.FlightDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// GetAll handles GET /v1/bookings. Customers see their own bookings,
// admins see everything.
func (h *BookingHandler) GetAll(c *gin.Context) {
	var (
		bookings []*domain.Booking
		err      error
	)

	if callerRole(c) == domain.RoleAdmin {
		bookings, err = h.bookingService.GetAllBookings(c.Request.Context())
	} else {
		bookings, err = h.bookingService.GetBookingsForUser(c.Request.Context(), callerID(c))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"), callerID(c), callerRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// CancelRequest is the HTTP request body for cancelling a booking.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	_ = c.ShouldBindJSON(&req) // Reason is optional.

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), service.CancelBookingRequest{
		BookingID:  c.Param("id"),
		CallerID:   callerID(c),
		CallerRole: callerRole(c),
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// PayRequest is the HTTP request body for paying a booking.
type PayRequest struct {
	PaymentMethod string `json:"payment_method"`
	Reference     string `json:"reference"`
}

// PayResponse is the HTTP response for a settled payment.
type PayResponse struct {
	Booking     BookingResponse     `json:"booking"`
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  float64             `json:"new_balance"`
}

// Pay handles POST /v1/bookings/:id/pay
func (h *BookingHandler) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.ledgerService.PayBookingFromBalance(c.Request.Context(), service.PayBookingRequest{
		BookingID: c.Param("id"),
		UserID:    callerID(c),
		Method:    domain.PaymentMethod(req.PaymentMethod),
		Reference: req.Reference,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PayResponse{
		Booking:     toBookingResponse(result.Booking),
		Transaction: toTransactionResponse(result.Transaction),
		NewBalance:  result.NewBalance,
	})
}

// UpdateStatusRequest is the HTTP request body for an admin status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /v1/bookings/:id/status (admin)
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status is required"})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}
