package service

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/flexprice/rvpark/internal/domain/spot"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/sourcegraph/conc/pool"
)

type SpotService interface {
	CreateSpot(ctx context.Context, req dto.CreateSpotRequest) (*dto.SpotResponse, error)
	GetSpot(ctx context.Context, id string) (*dto.SpotResponse, error)
	ListSpots(ctx context.Context, filter *types.SpotFilter) (*dto.ListSpotsResponse, error)
	UpdateSpot(ctx context.Context, id string, req dto.UpdateSpotRequest) (*dto.SpotResponse, error)
	DeleteSpot(ctx context.Context, id string) error
}

type spotService struct {
	ServiceParams
}

func NewSpotService(params ServiceParams) SpotService {
	return &spotService{
		ServiceParams: params,
	}
}

func (s *spotService) CreateSpot(ctx context.Context, req dto.CreateSpotRequest) (*dto.SpotResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.RvParkRepo.Get(ctx, req.RvParkID); err != nil {
		return nil, err
	}

	sp := req.ToSpot(ctx)
	if req.Status != nil && *req.Status != sp.Status {
		if _, err := spot.Override(sp, *req.Status, types.GetRole(ctx), sp.CreatedAt); err != nil {
			return nil, err
		}
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}

	if err := s.SpotRepo.Create(ctx, sp); err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionCreateSpot, types.AuditTableSpots, map[string]any{
		"spot_id":    sp.ID,
		"rv_park_id": sp.RvParkID,
		"code":       sp.Code,
		"status":     sp.Status,
	})

	return &dto.SpotResponse{Spot: sp}, nil
}

func (s *spotService) GetSpot(ctx context.Context, id string) (*dto.SpotResponse, error) {
	sp, err := s.SpotRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.SpotResponse{Spot: sp}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		park, err := s.RvParkRepo.Get(ctx, sp.RvParkID)
		if err != nil {
			return err
		}
		resp.RvPark = park
		return nil
	})
	p.Go(func(ctx context.Context) error {
		filter := types.NewNoLimitRentalFilter()
		filter.SpotID = &sp.ID
		rentals, err := s.RentalRepo.List(ctx, filter)
		if err != nil {
			return err
		}
		resp.Rentals = rentals
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, r := range resp.Rentals {
		if r.IsActive() {
			resp.ActiveRental = r
			break
		}
	}
	return resp, nil
}

func (s *spotService) ListSpots(ctx context.Context, filter *types.SpotFilter) (*dto.ListSpotsResponse, error) {
	if filter == nil {
		filter = types.NewSpotFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	spots, err := s.SpotRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.SpotRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SpotResponse, 0, len(spots))
	for _, sp := range spots {
		items = append(items, &dto.SpotResponse{Spot: sp})
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *spotService) UpdateSpot(ctx context.Context, id string, req dto.UpdateSpotRequest) (*dto.SpotResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var sp *spot.Spot
	var transition spot.Transition
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		sp, err = s.SpotRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if req.RvParkID != nil && *req.RvParkID != sp.RvParkID {
			if _, err := s.RvParkRepo.Get(txCtx, *req.RvParkID); err != nil {
				return err
			}
			sp.RvParkID = *req.RvParkID
		}
		if req.Code != nil {
			sp.Code = *req.Code
		}
		if req.Color != nil {
			sp.Color = *req.Color
		}

		if req.Status != nil && *req.Status != sp.Status {
			transition, err = spot.Override(sp, *req.Status, types.GetRole(ctx), now)
			if err != nil {
				return err
			}
		}

		sp.Touch(ctx, now)
		if err := sp.Validate(); err != nil {
			return err
		}
		return s.SpotRepo.Update(txCtx, sp)
	})
	if err != nil {
		return nil, err
	}

	if transition.Changed {
		s.Logger.Infow("spot status overridden",
			"spot_id", sp.ID,
			"from", transition.From,
			"to", transition.To,
			"role", types.GetRole(ctx),
		)
	}

	s.AuditRecorder.Record(ctx, types.AuditActionUpdateSpot, types.AuditTableSpots, map[string]any{
		"spot_id": sp.ID,
		"changes": req,
	})

	return &dto.SpotResponse{Spot: sp}, nil
}

func (s *spotService) DeleteSpot(ctx context.Context, id string) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		sp, err := s.SpotRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		filter := types.NewNoLimitRentalFilter()
		filter.SpotID = &sp.ID
		rentals, err := s.RentalRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}
		if rentals > 0 {
			return ierr.NewErrorf("spot %s has %d rentals", sp.ID, rentals).
				WithHint("The spot has rentals and cannot be deleted").
				WithReportableDetails(map[string]any{
					"spot_id": sp.ID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}

		return s.SpotRepo.Delete(txCtx, sp.ID)
	})
	if err != nil {
		return err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionDeleteSpot, types.AuditTableSpots, map[string]any{
		"spot_id": id,
	})
	return nil
}
