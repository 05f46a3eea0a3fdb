package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"charter/internal/domain"
	"charter/internal/repository"
)

// PilotHandler handles HTTP requests for pilots.
type PilotHandler struct {
	pilotRepo repository.PilotRepository
}

// NewPilotHandler creates a new PilotHandler.
func NewPilotHandler(pilotRepo repository.PilotRepository) *PilotHandler {
	return &PilotHandler{pilotRepo: pilotRepo}
}

// PilotRequest is the HTTP request body for creating or updating a pilot.
type PilotRequest struct {
	Name          string  `json:"name"`
	LicenseNumber string  `json:"license_number"`
	FlightHours   float64 `json:"flight_hours"`
	Status        string  `json:"status"`
}

// PilotResponse is the HTTP response for pilot data.
type PilotResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	LicenseNumber string  `json:"license_number"`
	FlightHours   float64 `json:"flight_hours"`
	Status        string  `json:"status"`
}

func toPilotResponse(p *domain.Pilot) PilotResponse {
	return PilotResponse{
		ID:            p.ID,
		Name:          p.Name,
		LicenseNumber: p.LicenseNumber,
		FlightHours:   p.FlightHours,
		Status:        string(p.Status),
	}
}

// Create handles POST /v1/pilots (admin)
func (h *PilotHandler) Create(c *gin.Context) {
	var req PilotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.LicenseNumber == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and license_number are required"})
		return
	}

	status := domain.PilotStatus(req.Status)
	if status == "" {
		status = domain.PilotStatusActive
	}

	pilot := &domain.Pilot{
		ID:            uuid.New().String(),
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		FlightHours:   req.FlightHours,
		Status:        status,
	}

	if err := h.pilotRepo.Create(c.Request.Context(), pilot); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPilotResponse(pilot))
}

// GetAll handles GET /v1/pilots (admin)
func (h *PilotHandler) GetAll(c *gin.Context) {
	pilots, err := h.pilotRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PilotResponse, 0, len(pilots))
	for _, p := range pilots {
		response = append(response, toPilotResponse(p))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/pilots/:id (admin)
func (h *PilotHandler) Get(c *gin.Context) {
	pilot, err := h.pilotRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPilotResponse(pilot))
}

// Update handles PUT /v1/pilots/:id (admin)
func (h *PilotHandler) Update(c *gin.Context) {
	var req PilotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	pilot, err := h.pilotRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != "" {
		pilot.Name = req.Name
	}
	if req.LicenseNumber != "" {
		pilot.LicenseNumber = req.LicenseNumber
	}
	if req.FlightHours > 0 {
		pilot.FlightHours = req.FlightHours
	}
	if req.Status != "" {
		pilot.Status = domain.PilotStatus(req.Status)
	}

	if err := h.pilotRepo.Update(c.Request.Context(), pilot); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPilotResponse(pilot))
}
