package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charter/internal/service"
)

// PricingHandler handles HTTP requests for price quotes.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// QuoteRequest is the HTTP request body for a price quote.
type QuoteRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Passengers int    `json:"passengers"`
	RoundTrip  bool   `json:"round_trip"`
}

// Quote handles POST /v1/pricing/quote
func (h *PricingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.From == "" || req.To == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to are required"})
		return
	}

	quote, err := h.pricingService.Quote(service.QuoteRequest{
		From:       req.From,
		To:         req.To,
		Passengers: req.Passengers,
		RoundTrip:  req.RoundTrip,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, quote)
}
