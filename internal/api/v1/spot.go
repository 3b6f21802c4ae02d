package v1

import (
	"net/http"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/service"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/gin-gonic/gin"
)

type SpotHandler struct {
	service service.SpotService
	log     *logger.Logger
}

func NewSpotHandler(service service.SpotService, log *logger.Logger) *SpotHandler {
	return &SpotHandler{service: service, log: log}
}

// @Summary Create a spot
// @Description Create a spot in an RV park. Admin only.
// @Tags Spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param spot body dto.CreateSpotRequest true "Spot"
// @Success 201 {object} dto.SpotResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /spots [post]
func (h *SpotHandler) CreateSpot(c *gin.Context) {
	var req dto.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSpot(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a spot
// @Description Get a spot with its park and current rental
// @Tags Spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {object} dto.SpotResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /spots/{id} [get]
func (h *SpotHandler) GetSpot(c *gin.Context) {
	resp, err := h.service.GetSpot(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List spots
// @Description List spots filtered by park or status
// @Tags Spots
// @Produce json
// @Security BearerAuth
// @Param filter query types.SpotFilter false "Filter"
// @Success 200 {object} dto.ListSpotsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /spots [get]
func (h *SpotHandler) ListSpots(c *gin.Context) {
	filter := types.NewSpotFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListSpots(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a spot
// @Description Update a spot. A status in the body is applied as a manual override.
// @Tags Spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param spot body dto.UpdateSpotRequest true "Spot"
// @Success 200 {object} dto.SpotResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /spots/{id} [put]
func (h *SpotHandler) UpdateSpot(c *gin.Context) {
	var req dto.UpdateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSpot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a spot
// @Description Delete a spot that no rental references. Admin only.
// @Tags Spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /spots/{id} [delete]
func (h *SpotHandler) DeleteSpot(c *gin.Context) {
	if err := h.service.DeleteSpot(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Spot deleted"})
}
