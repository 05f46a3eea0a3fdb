package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/repository"
	"charter/internal/service"
)

// TransactionHandler handles HTTP requests for ledger transactions.
type TransactionHandler struct {
	ledgerService *service.LedgerService
	txnRepo       repository.TransactionRepository
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerService *service.LedgerService, txnRepo repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService, txnRepo: txnRepo}
}

// TransactionResponse is the HTTP response for transaction data.
type TransactionResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	BookingID     string     `json:"booking_id,omitempty"`
	Type          string     `json:"type"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Status        string     `json:"status"`
	Reference     string     `json:"reference,omitempty"`
	AdminNotes    string     `json:"admin_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		BookingID:     t.BookingID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		PaymentMethod: string(t.PaymentMethod),
		Status:        string(t.Status),
		Reference:     t.Reference,
		AdminNotes:    t.AdminNotes,
		CreatedAt:     t.CreatedAt,
	}
	if !t.ProcessedAt.IsZero() {
		processedAt := t.ProcessedAt
		resp.ProcessedAt = &processedAt
	}
	return resp
}

// DepositRequest is the HTTP request body for a deposit request.
type DepositRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Reference     string  `json:"reference"`
}

// Deposit handles POST /v1/transactions/deposit
func (h *TransactionHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.ledgerService.RequestDeposit(
		c.Request.Context(),
		callerID(c),
		req.Amount,
		domain.PaymentMethod(req.PaymentMethod),
		req.Reference,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTransactionResponse(txn))
}

// WithdrawRequest is the HTTP request body for a withdrawal request.
type WithdrawRequest struct {
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

// Withdraw handles POST /v1/transactions/withdraw
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.ledgerService.RequestWithdrawal(c.Request.Context(), callerID(c), req.Amount, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTransactionResponse(txn))
}

// GetMine handles GET /v1/transactions
func (h *TransactionHandler) GetMine(c *gin.Context) {
	txns, err := h.txnRepo.GetAllByUser(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		response = append(response, toTransactionResponse(t))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetPending handles GET /v1/transactions/pending (admin)
func (h *TransactionHandler) GetPending(c *gin.Context) {
	txns, err := h.txnRepo.GetPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		response = append(response, toTransactionResponse(t))
	}

	respondJSON(c, http.StatusOK, response)
}

// ReviewRequest is the HTTP request body for reviewing a transaction.
type ReviewRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// ReviewResponse is the HTTP response for a completed review.
type ReviewResponse struct {
	Transaction    TransactionResponse `json:"transaction"`
	BalanceUpdated bool                `json:"balance_updated"`
	NewBalance     float64             `json:"new_balance,omitempty"`
}

// Review handles POST /v1/transactions/:id/review (admin)
func (h *TransactionHandler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status is required"})
		return
	}

	result, err := h.ledgerService.ReviewTransaction(c.Request.Context(), service.ReviewTransactionRequest{
		TransactionID: c.Param("id"),
		ActorRole:     callerRole(c),
		Status:        domain.TransactionStatus(req.Status),
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ReviewResponse{
		Transaction:    toTransactionResponse(result.Transaction),
		BalanceUpdated: result.BalanceUpdated,
		NewBalance:     result.NewBalance,
	})
}
