package service

import (
	"context"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

type AuditService interface {
	ListAuditLogs(ctx context.Context, filter *types.AuditLogFilter) (*dto.ListAuditLogsResponse, error)
}

type auditService struct {
	ServiceParams
}

func NewAuditService(params ServiceParams) AuditService {
	return &auditService{
		ServiceParams: params,
	}
}

func (s *auditService) ListAuditLogs(ctx context.Context, filter *types.AuditLogFilter) (*dto.ListAuditLogsResponse, error) {
	if !types.GetRole(ctx).IsAdmin() {
		return nil, ierr.NewError("audit log requires administrator role").
			WithHint("Only administrators can read the audit log").
			Mark(ierr.ErrPermissionDenied)
	}

	if filter == nil {
		filter = types.NewAuditLogFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	logs, err := s.AuditLogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.AuditLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := types.NewListResponse(logs, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
