package service

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

type RvParkService interface {
	CreateRvPark(ctx context.Context, req dto.CreateRvParkRequest) (*dto.RvParkResponse, error)
	GetRvPark(ctx context.Context, id string) (*dto.RvParkResponse, error)
	ListRvParks(ctx context.Context, filter *types.RvParkFilter) (*dto.ListRvParksResponse, error)
	UpdateRvPark(ctx context.Context, id string, req dto.UpdateRvParkRequest) (*dto.RvParkResponse, error)
	DeleteRvPark(ctx context.Context, id string) error
}

type rvParkService struct {
	ServiceParams
}

func NewRvParkService(params ServiceParams) RvParkService {
	return &rvParkService{
		ServiceParams: params,
	}
}

func (s *rvParkService) CreateRvPark(ctx context.Context, req dto.CreateRvParkRequest) (*dto.RvParkResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	park := req.ToRvPark(ctx)
	if err := park.Validate(); err != nil {
		return nil, err
	}

	if err := s.RvParkRepo.Create(ctx, park); err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionCreateRvPark, types.AuditTableRvParks, map[string]any{
		"rv_park_id": park.ID,
		"name":       park.Name,
	})

	return &dto.RvParkResponse{RvPark: park}, nil
}

func (s *rvParkService) GetRvPark(ctx context.Context, id string) (*dto.RvParkResponse, error) {
	park, err := s.RvParkRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	filter := types.NewNoLimitSpotFilter()
	filter.RvParkID = &park.ID
	spots, err := s.SpotRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.RvParkResponse{RvPark: park, Spots: spots}, nil
}

func (s *rvParkService) ListRvParks(ctx context.Context, filter *types.RvParkFilter) (*dto.ListRvParksResponse, error) {
	if filter == nil {
		filter = types.NewRvParkFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	parks, err := s.RvParkRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.RvParkRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RvParkResponse, 0, len(parks))
	for _, park := range parks {
		items = append(items, &dto.RvParkResponse{RvPark: park})
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *rvParkService) UpdateRvPark(ctx context.Context, id string, req dto.UpdateRvParkRequest) (*dto.RvParkResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	park, err := s.RvParkRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(park)
	park.Touch(ctx, time.Now().UTC())
	if err := park.Validate(); err != nil {
		return nil, err
	}

	if err := s.RvParkRepo.Update(ctx, park); err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionUpdateRvPark, types.AuditTableRvParks, map[string]any{
		"rv_park_id": park.ID,
		"changes":    req,
	})

	return &dto.RvParkResponse{RvPark: park}, nil
}

// DeleteRvPark removes a park that no longer has spots
func (s *rvParkService) DeleteRvPark(ctx context.Context, id string) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		park, err := s.RvParkRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		filter := types.NewNoLimitSpotFilter()
		filter.RvParkID = &park.ID
		spots, err := s.SpotRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}
		if spots > 0 {
			return ierr.NewErrorf("rv park %s still has %d spots", park.ID, spots).
				WithHint("Delete the spots of the RV park first").
				WithReportableDetails(map[string]any{
					"rv_park_id": park.ID,
					"spots":      spots,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		return s.RvParkRepo.Delete(txCtx, park.ID)
	})
	if err != nil {
		return err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionDeleteRvPark, types.AuditTableRvParks, map[string]any{
		"rv_park_id": id,
	})
	return nil
}
