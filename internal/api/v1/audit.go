package v1

import (
	"net/http"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/service"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	service service.AuditService
	log     *logger.Logger
}

func NewAuditHandler(service service.AuditService, log *logger.Logger) *AuditHandler {
	return &AuditHandler{service: service, log: log}
}

// @Summary List audit logs
// @Description List audit log entries, newest first. Admin only.
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param filter query types.AuditLogFilter false "Filter"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	filter := types.NewAuditLogFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
