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

type PersonHandler struct {
	service service.PersonService
	log     *logger.Logger
}

func NewPersonHandler(service service.PersonService, log *logger.Logger) *PersonHandler {
	return &PersonHandler{service: service, log: log}
}

// @Summary Create a person
// @Tags Persons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param person body dto.CreatePersonRequest true "Person"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /persons [post]
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePerson(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a person
// @Description Get a person with their rental history
// @Tags Persons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /persons/{id} [get]
func (h *PersonHandler) GetPerson(c *gin.Context) {
	resp, err := h.service.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List persons
// @Tags Persons
// @Produce json
// @Security BearerAuth
// @Param filter query types.PersonFilter false "Filter"
// @Success 200 {object} dto.ListPersonsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /persons [get]
func (h *PersonHandler) ListPersons(c *gin.Context) {
	filter := types.NewPersonFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPersons(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a person
// @Tags Persons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Param person body dto.UpdatePersonRequest true "Person"
// @Success 200 {object} dto.PersonResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /persons/{id} [put]
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePerson(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a person
// @Description Delete a person without rentals
// @Tags Persons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /persons/{id} [delete]
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	if err := h.service.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Person deleted"})
}
