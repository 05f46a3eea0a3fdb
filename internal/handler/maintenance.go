package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"charter/internal/domain"
	"charter/internal/repository"
)

// MaintenanceHandler handles HTTP requests for maintenance records.
type MaintenanceHandler struct {
	maintenanceRepo repository.MaintenanceRepository
	helicopterRepo  repository.HelicopterRepository
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceRepo repository.MaintenanceRepository, helicopterRepo repository.HelicopterRepository) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceRepo: maintenanceRepo, helicopterRepo: helicopterRepo}
}

// MaintenanceRequest is the HTTP request body for creating a record.
type MaintenanceRequest struct {
	HelicopterID string    `json:"helicopter_id"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Cost         float64   `json:"cost"`
	PerformedAt  time.Time `json:"performed_at"`
	NextDueAt    time.Time `json:"next_due_at"`
}

// MaintenanceResponse is the HTTP response for maintenance data.
type MaintenanceResponse struct {
	ID           string     `json:"id"`
	HelicopterID string     `json:"helicopter_id"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Cost         float64    `json:"cost"`
	PerformedAt  *time.Time `json:"performed_at,omitempty"`
	NextDueAt    *time.Time `json:"next_due_at,omitempty"`
	Status       string     `json:"status"`
}

func toMaintenanceResponse(r *domain.MaintenanceRecord) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:           r.ID,
		HelicopterID: r.HelicopterID,
		Type:         string(r.Type),
		Description:  r.Description,
		Cost:         r.Cost,
		Status:       string(r.Status),
	}
	if !r.PerformedAt.IsZero() {
		t := r.PerformedAt
		resp.PerformedAt = &t
	}
	if !r.NextDueAt.IsZero() {
		t := r.NextDueAt
		resp.NextDueAt = &t
	}
	return resp
}

// Create handles POST /v1/maintenance (admin)
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.HelicopterID == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "helicopter_id and type are required"})
		return
	}

	// A record must reference a real airframe.
	if _, err := h.helicopterRepo.GetByID(c.Request.Context(), req.HelicopterID); err != nil {
		respondError(c, err)
		return
	}

	rec := &domain.MaintenanceRecord{
		ID:           uuid.New().String(),
		HelicopterID: req.HelicopterID,
		Type:         domain.MaintenanceType(req.Type),
		Description:  req.Description,
		Cost:         req.Cost,
		PerformedAt:  req.PerformedAt,
		NextDueAt:    req.NextDueAt,
		Status:       domain.MaintenanceStatusScheduled,
	}

	if err := h.maintenanceRepo.Create(c.Request.Context(), rec); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toMaintenanceResponse(rec))
}

// GetAll handles GET /v1/maintenance (admin). With ?due=true it returns
// only records whose next due date has passed.
func (h *MaintenanceHandler) GetAll(c *gin.Context) {
	var (
		recs []*domain.MaintenanceRecord
		err  error
	)

	if c.Query("due") == "true" {
		recs, err = h.maintenanceRepo.GetDueBefore(c.Request.Context(), time.Now())
	} else {
		recs, err = h.maintenanceRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toMaintenanceResponses(recs))
}

// GetForHelicopter handles GET /v1/helicopters/:id/maintenance (admin)
func (h *MaintenanceHandler) GetForHelicopter(c *gin.Context) {
	recs, err := h.maintenanceRepo.GetAllByHelicopter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toMaintenanceResponses(recs))
}

// UpdateStatus handles POST /v1/maintenance/:id/status (admin)
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status is required"})
		return
	}

	if err := h.maintenanceRepo.UpdateStatus(c.Request.Context(), c.Param("id"), domain.MaintenanceStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.maintenanceRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toMaintenanceResponse(rec))
}

func toMaintenanceResponses(recs []*domain.MaintenanceRecord) []MaintenanceResponse {
	response := make([]MaintenanceResponse, 0, len(recs))
	for _, r := range recs {
		response = append(response, toMaintenanceResponse(r))
	}
	return response
}
