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

type RentalHandler struct {
	service service.RentalService
	log     *logger.Logger
}

func NewRentalHandler(service service.RentalService, log *logger.Logger) *RentalHandler {
	return &RentalHandler{service: service, log: log}
}

// @Summary Create a rental
// @Description Rent a spot to a person. The first, prorated period is charged in the same transaction.
// @Tags Rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rental body dto.CreateRentalRequest true "Rental"
// @Success 201 {object} dto.RentalResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req dto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateRental(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a rental
// @Description Get a rental with its person, spot and payments
// @Tags Rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} dto.RentalResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	resp, err := h.service.GetRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List rentals
// @Tags Rentals
// @Produce json
// @Security BearerAuth
// @Param filter query types.RentalFilter false "Filter"
// @Success 200 {object} dto.ListRentalsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rentals [get]
func (h *RentalHandler) ListRentals(c *gin.Context) {
	filter := types.NewRentalFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRentals(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a rental
// @Description Patch rental fields. Setting an end date on or before today releases the spot.
// @Tags Rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param rental body dto.UpdateRentalRequest true "Rental"
// @Success 200 {object} dto.RentalResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rentals/{id} [put]
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	var req dto.UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateRental(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a rental
// @Description Delete a rental and its payments. Admin only.
// @Tags Rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rentals/{id} [delete]
func (h *RentalHandler) DeleteRental(c *gin.Context) {
	if err := h.service.DeleteRental(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Rental deleted"})
}
