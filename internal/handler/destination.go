package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
)

// DestinationHandler serves the static destination table.
type DestinationHandler struct{}

// NewDestinationHandler creates a new DestinationHandler.
func NewDestinationHandler() *DestinationHandler {
	return &DestinationHandler{}
}

// DestinationResponse is the HTTP response for a destination.
type DestinationResponse struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// GetAll handles GET /v1/destinations
func (h *DestinationHandler) GetAll(c *gin.Context) {
	destinations := domain.AllDestinations()
	sort.Slice(destinations, func(i, j int) bool {
		return destinations[i].Code < destinations[j].Code
	})

	response := make([]DestinationResponse, 0, len(destinations))
	for _, d := range destinations {
		response = append(response, DestinationResponse{
			Code: d.Code,
			Name: d.Name,
			Lat:  d.Lat,
			Lng:  d.Lng,
		})
	}

	respondJSON(c, http.StatusOK, response)
}
