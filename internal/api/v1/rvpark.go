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

type RvParkHandler struct {
	service service.RvParkService
	log     *logger.Logger
}

func NewRvParkHandler(service service.RvParkService, log *logger.Logger) *RvParkHandler {
	return &RvParkHandler{service: service, log: log}
}

// @Summary Create an RV park
// @Description Create an RV park. Admin only.
// @Tags RvParks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rv_park body dto.CreateRvParkRequest true "RV park"
// @Success 201 {object} dto.RvParkResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rv-parks [post]
func (h *RvParkHandler) CreateRvPark(c *gin.Context) {
	var req dto.CreateRvParkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateRvPark(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an RV park
// @Description Get an RV park with its spots
// @Tags RvParks
// @Produce json
// @Security BearerAuth
// @Param id path string true "RV park ID"
// @Success 200 {object} dto.RvParkResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rv-parks/{id} [get]
func (h *RvParkHandler) GetRvPark(c *gin.Context) {
	resp, err := h.service.GetRvPark(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List RV parks
// @Description List RV parks, optionally filtered by name
// @Tags RvParks
// @Produce json
// @Security BearerAuth
// @Param filter query types.RvParkFilter false "Filter"
// @Success 200 {object} dto.ListRvParksResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rv-parks [get]
func (h *RvParkHandler) ListRvParks(c *gin.Context) {
	filter := types.NewRvParkFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRvParks(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an RV park
// @Tags RvParks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "RV park ID"
// @Param rv_park body dto.UpdateRvParkRequest true "RV park"
// @Success 200 {object} dto.RvParkResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rv-parks/{id} [put]
func (h *RvParkHandler) UpdateRvPark(c *gin.Context) {
	var req dto.UpdateRvParkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateRvPark(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an RV park
// @Description Delete an RV park that has no spots. Admin only.
// @Tags RvParks
// @Produce json
// @Security BearerAuth
// @Param id path string true "RV park ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rv-parks/{id} [delete]
func (h *RvParkHandler) DeleteRvPark(c *gin.Context) {
	if err := h.service.DeleteRvPark(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "RV park deleted"})
}
