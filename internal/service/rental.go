package service

import (
	"context"
	"fmt"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/spot"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// graphLoadConcurrency bounds the goroutines used to load related records
const graphLoadConcurrency = 8

// RentalService owns the rental lifecycle. Every write keeps the rental,
// its payments and the status of its spot consistent in one transaction.
type RentalService interface {
	CreateRental(ctx context.Context, req dto.CreateRentalRequest) (*dto.RentalResponse, error)
	GetRental(ctx context.Context, id string) (*dto.RentalResponse, error)
	ListRentals(ctx context.Context, filter *types.RentalFilter) (*dto.ListRentalsResponse, error)
	UpdateRental(ctx context.Context, id string, req dto.UpdateRentalRequest) (*dto.RentalResponse, error)
	DeleteRental(ctx context.Context, id string) error
}

type rentalService struct {
	ServiceParams
}

func NewRentalService(params ServiceParams) RentalService {
	return &rentalService{
		ServiceParams: params,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, req dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end, err := req.Dates()
	if err != nil {
		return nil, err
	}

	firstPeriod := s.Calculator.ComputeFirstPeriod(start)

	var rent *rental.Rental
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		sp, err := s.SpotRepo.GetForUpdate(txCtx, req.SpotID)
		if err != nil {
			return err
		}
		if sp.Status != types.SpotStatusAvailable {
			return ierr.NewErrorf("spot %s is not available", sp.ID).
				WithHintf("The spot is not available. Current status: %s", sp.Status).
				WithReportableDetails(map[string]any{
					"spot_id": sp.ID,
					"status":  sp.Status,
				}).
				Mark(ierr.ErrAlreadyExists)
		}

		if _, err := s.PersonRepo.Get(txCtx, req.PersonID); err != nil {
			return err
		}

		if err := s.ensureNoActiveRental(txCtx, sp.ID); err != nil {
			return err
		}

		rent = req.ToRental(ctx, start, firstPeriod)
		if err := rent.SetEndDate(end); err != nil {
			return err
		}
		if err := rent.Validate(); err != nil {
			return err
		}
		if err := s.RentalRepo.Create(txCtx, rent); err != nil {
			return err
		}

		initial := newPayment(ctx, rent.ID, start, firstPeriod.Amount, firstPeriod.Period, rent.PaymentMethod,
			fmt.Sprintf("Pago inicial - %d días de %d", firstPeriod.RemainingDays, firstPeriod.MonthLength))
		if err := initial.Validate(); err != nil {
			return err
		}
		if err := s.PaymentRepo.Create(txCtx, initial); err != nil {
			return err
		}

		_, err = applySpotEvent(txCtx, s.SpotRepo, sp, spot.EventRentalCreated)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created rental",
		"rental_id", rent.ID,
		"spot_id", rent.SpotID,
		"person_id", rent.PersonID,
		"amount", firstPeriod.Amount.String(),
		"period", firstPeriod.Period,
	)

	s.AuditRecorder.Record(ctx, types.AuditActionCreateRental, types.AuditTableRentals, map[string]any{
		"rental_id": rent.ID,
		"person_id": rent.PersonID,
		"spot_id":   rent.SpotID,
		"amount":    firstPeriod.Amount.String(),
		"period":    firstPeriod.Period,
	})

	resp, err := s.loadRentalGraph(ctx, rent)
	if err != nil {
		return nil, err
	}
	resp.FirstPeriod = dto.NewFirstPeriodResponse(firstPeriod, s.Calculator.MonthlyRate())
	return resp, nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*dto.RentalResponse, error) {
	if id == "" {
		return nil, ierr.NewError("rental_id is required").
			WithHint("Rental ID is required").
			Mark(ierr.ErrValidation)
	}

	rent, err := s.RentalRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadRentalGraph(ctx, rent)
}

func (s *rentalService) ListRentals(ctx context.Context, filter *types.RentalFilter) (*dto.ListRentalsResponse, error) {
	if filter == nil {
		filter = types.NewRentalFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rentals, err := s.RentalRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.RentalRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RentalResponse, len(rentals))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(graphLoadConcurrency)
	for i, rent := range rentals {
		i, rent := i, rent
		p.Go(func(ctx context.Context) error {
			resp, err := s.loadRentalGraph(ctx, rent)
			if err != nil {
				return err
			}
			items[i] = resp
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *rentalService) UpdateRental(ctx context.Context, id string, req dto.UpdateRentalRequest) (*dto.RentalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var rent *rental.Rental
	var terminated bool
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		rent, err = s.RentalRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		wasActive := rent.IsActive()

		if req.StartDate != nil {
			start, err := types.ParseDate(*req.StartDate)
			if err != nil {
				return err
			}
			rent.StartDate = start
		}

		// total days follow whichever of the dates changed
		end := rent.EndDate
		if req.EndDate != nil {
			parsed, err := types.ParseDate(*req.EndDate)
			if err != nil {
				return err
			}
			end = &parsed
		}
		if err := rent.SetEndDate(end); err != nil {
			return err
		}

		if req.PaymentMethod != nil {
			rent.PaymentMethod = *req.PaymentMethod
		}
		if req.PaymentStatus != nil {
			rent.PaymentStatus = *req.PaymentStatus
		}
		if req.TotalAmount != nil {
			rent.TotalAmount = *req.TotalAmount
		}
		if req.Notes != nil {
			rent.Notes = *req.Notes
		}

		rent.Touch(ctx, time.Now().UTC())
		if err := rent.Validate(); err != nil {
			return err
		}
		if err := s.RentalRepo.Update(txCtx, rent); err != nil {
			return err
		}

		if !wasActive || rent.IsActive() {
			return nil
		}

		// the rental just ended, release its spot
		terminated = true
		sp, err := s.SpotRepo.GetForUpdate(txCtx, rent.SpotID)
		if err != nil {
			return err
		}
		_, err = applySpotEvent(txCtx, s.SpotRepo, sp, spot.EventRentalTerminated)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("updated rental", "rental_id", rent.ID, "terminated", terminated)

	s.AuditRecorder.Record(ctx, types.AuditActionUpdateRental, types.AuditTableRentals, map[string]any{
		"rental_id": rent.ID,
		"changes":   req,
	})

	return s.loadRentalGraph(ctx, rent)
}

func (s *rentalService) DeleteRental(ctx context.Context, id string) error {
	var rent *rental.Rental
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		rent, err = s.RentalRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		sp, err := s.SpotRepo.GetForUpdate(txCtx, rent.SpotID)
		if err != nil {
			return err
		}

		// another rental may occupy the spot when this one ended long ago
		occupied, err := s.spotOccupiedByOther(txCtx, sp.ID, rent.ID)
		if err != nil {
			return err
		}
		if !occupied {
			if _, err := applySpotEvent(txCtx, s.SpotRepo, sp, spot.EventRentalDeleted); err != nil {
				return err
			}
		}

		if err := s.PaymentRepo.DeleteByRental(txCtx, rent.ID); err != nil {
			return err
		}
		return s.RentalRepo.Delete(txCtx, rent.ID)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("deleted rental", "rental_id", rent.ID, "spot_id", rent.SpotID)

	s.AuditRecorder.Record(ctx, types.AuditActionDeleteRental, types.AuditTableRentals, map[string]any{
		"rental_id": rent.ID,
		"spot_id":   rent.SpotID,
	})
	return nil
}

func (s *rentalService) ensureNoActiveRental(ctx context.Context, spotID string) error {
	active, err := s.RentalRepo.GetActiveBySpot(ctx, spotID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	return ierr.NewErrorf("spot %s already has active rental %s", spotID, active.ID).
		WithHint("The spot already has an active rental").
		WithReportableDetails(map[string]any{
			"spot_id":   spotID,
			"rental_id": active.ID,
		}).
		Mark(ierr.ErrAlreadyExists)
}

func (s *rentalService) spotOccupiedByOther(ctx context.Context, spotID, rentalID string) (bool, error) {
	active, err := s.RentalRepo.GetActiveBySpot(ctx, spotID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return active.ID != rentalID, nil
}

// loadRentalGraph fetches the person, spot and payments of rent concurrently
func (s *rentalService) loadRentalGraph(ctx context.Context, rent *rental.Rental) (*dto.RentalResponse, error) {
	resp := &dto.RentalResponse{Rental: rent}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		per, err := s.PersonRepo.Get(ctx, rent.PersonID)
		if err != nil {
			return err
		}
		resp.Person = per
		return nil
	})
	p.Go(func(ctx context.Context) error {
		sp, err := s.SpotRepo.Get(ctx, rent.SpotID)
		if err != nil {
			return err
		}
		resp.Spot = sp
		return nil
	})
	p.Go(func(ctx context.Context) error {
		filter := types.NewNoLimitPaymentFilter()
		filter.RentalID = &rent.ID
		payments, err := s.PaymentRepo.List(ctx, filter)
		if err != nil {
			return err
		}
		resp.Payments = payments
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

// applySpotEvent runs event against sp and saves the spot when its status changed
func applySpotEvent(ctx context.Context, repo spot.Repository, sp *spot.Spot, event spot.Event) (spot.Transition, error) {
	now := time.Now().UTC()
	transition, err := spot.Apply(sp, event, now)
	if err != nil {
		return transition, err
	}
	if !transition.Changed {
		return transition, nil
	}

	sp.Touch(ctx, now)
	if err := repo.Update(ctx, sp); err != nil {
		return transition, err
	}
	return transition, nil
}
