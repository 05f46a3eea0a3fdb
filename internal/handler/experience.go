package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"charter/internal/domain"
	"charter/internal/redis"
	"charter/internal/repository"
)

// ExperienceHandler handles HTTP requests for scenic flight packages.
type ExperienceHandler struct {
	experienceRepo repository.ExperienceRepository
	cache          *redis.CacheStore
}

// NewExperienceHandler creates a new ExperienceHandler. cache may be nil.
func NewExperienceHandler(experienceRepo repository.ExperienceRepository, cache *redis.CacheStore) *ExperienceHandler {
	return &ExperienceHandler{experienceRepo: experienceRepo, cache: cache}
}

// ExperienceRequest is the HTTP request body for creating or updating an
// experience.
type ExperienceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DestinationCode string  `json:"destination_code"`
	DurationMinutes int     `json:"duration_minutes"`
	PricePerSeat    float64 `json:"price_per_seat"`
	Active          *bool   `json:"active"`
}

// ExperienceResponse is the HTTP response for experience data.
type ExperienceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DestinationCode string  `json:"destination_code"`
	DurationMinutes int     `json:"duration_minutes"`
	PricePerSeat    float64 `json:"price_per_seat"`
	Active          bool    `json:"active"`
}

func toExperienceResponse(e *domain.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		DestinationCode: e.DestinationCode,
		DurationMinutes: e.DurationMinutes,
		PricePerSeat:    e.PricePerSeat,
		Active:          e.Active,
	}
}

// GetActive handles GET /v1/experiences. Serves from cache when warm.
func (h *ExperienceHandler) GetActive(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, err := h.cache.GetActiveExperiences(ctx); err == nil && cached != nil {
			response := make([]ExperienceResponse, 0, len(cached))
			for _, e := range cached {
				response = append(response, ExperienceResponse{
					ID:              e.ID,
					Name:            e.Name,
					Description:     e.Description,
					DestinationCode: e.DestinationCode,
					DurationMinutes: e.DurationMinutes,
					PricePerSeat:    e.PricePerSeat,
					Active:          true,
				})
			}
			respondJSON(c, http.StatusOK, response)
			return
		}
	}

	exps, err := h.experienceRepo.GetActive(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ExperienceResponse, 0, len(exps))
	cached := make([]redis.CachedExperience, 0, len(exps))
	for _, e := range exps {
		response = append(response, toExperienceResponse(e))
		cached = append(cached, redis.CachedExperience{
			ID:              e.ID,
			Name:            e.Name,
			Description:     e.Description,
			DestinationCode: e.DestinationCode,
			DurationMinutes: e.DurationMinutes,
			PricePerSeat:    e.PricePerSeat,
		})
	}

	if h.cache != nil {
		_ = h.cache.SetActiveExperiences(ctx, cached)
	}

	respondJSON(c, http.StatusOK, response)
}

// Create handles POST /v1/experiences (admin)
func (h *ExperienceHandler) Create(c *gin.Context) {
	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.DestinationCode == "" || req.PricePerSeat <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name, destination_code and price_per_seat are required"})
		return
	}

	if _, ok := domain.LookupDestination(req.DestinationCode); !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown destination code"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	exp := &domain.Experience{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		DestinationCode: req.DestinationCode,
		DurationMinutes: req.DurationMinutes,
		PricePerSeat:    req.PricePerSeat,
		Active:          active,
	}

	if err := h.experienceRepo.Create(c.Request.Context(), exp); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateCache(c)
	respondJSON(c, http.StatusCreated, toExperienceResponse(exp))
}

// Update handles PUT /v1/experiences/:id (admin)
func (h *ExperienceHandler) Update(c *gin.Context) {
	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	exp, err := h.experienceRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != "" {
		exp.Name = req.Name
	}
	if req.Description != "" {
		exp.Description = req.Description
	}
	if req.DestinationCode != "" {
		if _, ok := domain.LookupDestination(req.DestinationCode); !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown destination code"})
			return
		}
		exp.DestinationCode = req.DestinationCode
	}
	if req.DurationMinutes > 0 {
		exp.DurationMinutes = req.DurationMinutes
	}
	if req.PricePerSeat > 0 {
		exp.PricePerSeat = req.PricePerSeat
	}
	if req.Active != nil {
		exp.Active = *req.Active
	}

	if err := h.experienceRepo.Update(c.Request.Context(), exp); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateCache(c)
	respondJSON(c, http.StatusOK, toExperienceResponse(exp))
}

func (h *ExperienceHandler) invalidateCache(c *gin.Context) {
	if h.cache != nil {
		_ = h.cache.InvalidateActiveExperiences(c.Request.Context())
	}
}
