package service

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

type PersonService interface {
	CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*dto.PersonResponse, error)
	GetPerson(ctx context.Context, id string) (*dto.PersonResponse, error)
	ListPersons(ctx context.Context, filter *types.PersonFilter) (*dto.ListPersonsResponse, error)
	UpdatePerson(ctx context.Context, id string, req dto.UpdatePersonRequest) (*dto.PersonResponse, error)
	DeletePerson(ctx context.Context, id string) error
}

type personService struct {
	ServiceParams
}

func NewPersonService(params ServiceParams) PersonService {
	return &personService{
		ServiceParams: params,
	}
}

func (s *personService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPerson(ctx)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.PersonRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionCreatePerson, types.AuditTablePersons, map[string]any{
		"person_id": p.ID,
		"name":      p.Name,
	})

	return &dto.PersonResponse{Person: p}, nil
}

func (s *personService) GetPerson(ctx context.Context, id string) (*dto.PersonResponse, error) {
	p, err := s.PersonRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	filter := types.NewNoLimitRentalFilter()
	filter.PersonID = &p.ID
	rentals, err := s.RentalRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.PersonResponse{Person: p, Rentals: rentals}, nil
}

func (s *personService) ListPersons(ctx context.Context, filter *types.PersonFilter) (*dto.ListPersonsResponse, error) {
	if filter == nil {
		filter = types.NewPersonFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	persons, err := s.PersonRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PersonRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PersonResponse, 0, len(persons))
	for _, p := range persons {
		items = append(items, &dto.PersonResponse{Person: p})
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *personService) UpdatePerson(ctx context.Context, id string, req dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PersonRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	p.Touch(ctx, time.Now().UTC())
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.PersonRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionUpdatePerson, types.AuditTablePersons, map[string]any{
		"person_id": p.ID,
		"changes":   req,
	})

	return &dto.PersonResponse{Person: p}, nil
}

func (s *personService) DeletePerson(ctx context.Context, id string) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.PersonRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		// rentals keep a reference to their tenant, ended ones included
		filter := types.NewNoLimitRentalFilter()
		filter.PersonID = &p.ID
		rentals, err := s.RentalRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}
		if rentals > 0 {
			return ierr.NewErrorf("person %s has %d rentals", p.ID, rentals).
				WithHint("The person has rentals and cannot be deleted").
				WithReportableDetails(map[string]any{
					"person_id": p.ID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}

		return s.PersonRepo.Delete(txCtx, p.ID)
	})
	if err != nil {
		return err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionDeletePerson, types.AuditTablePersons, map[string]any{
		"person_id": id,
	})
	return nil
}
