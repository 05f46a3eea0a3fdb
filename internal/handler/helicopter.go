package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"charter/internal/domain"
	"charter/internal/redis"
	"charter/internal/repository"
)

// HelicopterHandler handles HTTP requests for the fleet.
type HelicopterHandler struct {
	helicopterRepo repository.HelicopterRepository
	cache          redis.HelicopterCacheInterface
}

// NewHelicopterHandler creates a new HelicopterHandler.
func NewHelicopterHandler(helicopterRepo repository.HelicopterRepository, cache redis.HelicopterCacheInterface) *HelicopterHandler {
	return &HelicopterHandler{helicopterRepo: helicopterRepo, cache: cache}
}

// HelicopterRequest is the HTTP request body for creating or updating a
// helicopter.
type HelicopterRequest struct {
	Registration  string  `json:"registration"`
	Model         string  `json:"model"`
	Capacity      int     `json:"capacity"`
	CruiseSpeedKm float64 `json:"cruise_speed_km"`
	Status        string  `json:"status"`
}

// HelicopterResponse is the HTTP response for helicopter data.
type HelicopterResponse struct {
	ID            string  `json:"id"`
	Registration  string  `json:"registration"`
	Model         string  `json:"model"`
	Capacity      int     `json:"capacity"`
	CruiseSpeedKm float64 `json:"cruise_speed_km"`
	Status        string  `json:"status"`
}

func toHelicopterResponse(h *domain.Helicopter) HelicopterResponse {
	return HelicopterResponse{
		ID:            h.ID,
		Registration:  h.Registration,
		Model:         h.Model,
		Capacity:      h.Capacity,
		CruiseSpeedKm: h.CruiseSpeedKm,
		Status:        string(h.Status),
	}
}

// Create handles POST /v1/helicopters (admin)
func (h *HelicopterHandler) Create(c *gin.Context) {
	var req HelicopterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Registration == "" || req.Model == "" || req.Capacity < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "registration, model and capacity are required"})
		return
	}

	status := domain.HelicopterStatus(req.Status)
	if status == "" {
		status = domain.HelicopterStatusAvailable
	}

	helicopter := &domain.Helicopter{
		ID:            uuid.New().String(),
		Registration:  req.Registration,
		Model:         req.Model,
		Capacity:      req.Capacity,
		CruiseSpeedKm: req.CruiseSpeedKm,
		Status:        status,
	}

	if err := h.helicopterRepo.Create(c.Request.Context(), helicopter); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toHelicopterResponse(helicopter))
}

// GetAll handles GET /v1/helicopters
func (h *HelicopterHandler) GetAll(c *gin.Context) {
	fleet, err := h.helicopterRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]HelicopterResponse, 0, len(fleet))
	for _, heli := range fleet {
		response = append(response, toHelicopterResponse(heli))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/helicopters/:id
func (h *HelicopterHandler) Get(c *gin.Context) {
	helicopter, err := h.helicopterRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toHelicopterResponse(helicopter))
}

// Update handles PUT /v1/helicopters/:id (admin)
func (h *HelicopterHandler) Update(c *gin.Context) {
	var req HelicopterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	helicopter, err := h.helicopterRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Registration != "" {
		helicopter.Registration = req.Registration
	}
	if req.Model != "" {
		helicopter.Model = req.Model
	}
	if req.Capacity > 0 {
		helicopter.Capacity = req.Capacity
	}
	if req.CruiseSpeedKm > 0 {
		helicopter.CruiseSpeedKm = req.CruiseSpeedKm
	}
	if req.Status != "" {
		helicopter.Status = domain.HelicopterStatus(req.Status)
	}

	if err := h.helicopterRepo.Update(c.Request.Context(), helicopter); err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateHelicopter(c.Request.Context(), helicopter.ID)
	}

	respondJSON(c, http.StatusOK, toHelicopterResponse(helicopter))
}
