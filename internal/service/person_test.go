package service

import (
	"testing"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/testutil"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type PersonServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PersonService
	rentals  RentalService
	fixtures fixtures
}

func TestPersonService(t *testing.T) {
	suite.Run(t, new(PersonServiceSuite))
}

func (s *PersonServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewPersonService(params)
	s.rentals = NewRentalService(params)
	s.fixtures = seedFixtures(&s.BaseServiceTestSuite)
}

func (s *PersonServiceSuite) TestCreatePerson() {
	testCases := []struct {
		name          string
		request       dto.CreatePersonRequest
		expectedError bool
		vehicleType   types.VehicleType
	}{
		{
			name:        "vehicle_type_defaults_to_other",
			request:     dto.CreatePersonRequest{Name: "María López", Email: "maria@example.com"},
			vehicleType: types.VehicleTypeOther,
		},
		{
			name:        "explicit_vehicle_type",
			request:     dto.CreatePersonRequest{Name: "Transportes Norte", VehicleType: types.VehicleTypeCargo},
			vehicleType: types.VehicleTypeCargo,
		},
		{
			name:          "unknown_vehicle_type",
			request:       dto.CreatePersonRequest{Name: "Pedro", VehicleType: "Barco"},
			expectedError: true,
		},
		{
			name:          "invalid_email",
			request:       dto.CreatePersonRequest{Name: "Pedro", Email: "not-an-email"},
			expectedError: true,
		},
		{
			name:          "missing_name",
			request:       dto.CreatePersonRequest{Phone: "555"},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreatePerson(s.GetContext(), tc.request)
			if tc.expectedError {
				s.Require().Error(err)
				s.True(ierr.IsValidation(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.vehicleType, resp.VehicleType)
			s.Equal(tc.request.Name, resp.Name)
		})
	}
}

func (s *PersonServiceSuite) TestGetPersonIncludesRentals() {
	ctx := s.GetContext()
	rent, err := s.rentals.CreateRental(ctx, dto.CreateRentalRequest{
		PersonID:      s.fixtures.person.ID,
		SpotID:        s.fixtures.spot.ID,
		StartDate:     "2024-02-10",
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Require().NoError(err)

	resp, err := s.service.GetPerson(ctx, s.fixtures.person.ID)
	s.Require().NoError(err)
	s.Require().Len(resp.Rentals, 1)
	s.Equal(rent.ID, resp.Rentals[0].ID)
}

func (s *PersonServiceSuite) TestUpdatePerson() {
	resp, err := s.service.UpdatePerson(s.GetContext(), s.fixtures.person.ID, dto.UpdatePersonRequest{
		Phone:       lo.ToPtr("555-0111"),
		VehicleType: lo.ToPtr(types.VehicleTypeMachinery),
	})
	s.Require().NoError(err)
	s.Equal("555-0111", resp.Phone)
	s.Equal(types.VehicleTypeMachinery, resp.VehicleType)
	s.Equal(s.fixtures.person.Name, resp.Name)

	_, err = s.service.UpdatePerson(s.GetContext(), "per_missing", dto.UpdatePersonRequest{})
	s.True(ierr.IsNotFound(err))
}

func (s *PersonServiceSuite) TestDeletePersonWithRentalsIsBlocked() {
	ctx := s.GetContext()
	rent, err := s.rentals.CreateRental(ctx, dto.CreateRentalRequest{
		PersonID:      s.fixtures.person.ID,
		SpotID:        s.fixtures.spot.ID,
		StartDate:     "2024-02-10",
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Require().NoError(err)

	err = s.service.DeletePerson(ctx, s.fixtures.person.ID)
	s.True(ierr.IsAlreadyExists(err))

	// an ended rental still references the tenant
	_, err = s.rentals.UpdateRental(ctx, rent.ID, dto.UpdateRentalRequest{EndDate: lo.ToPtr("2024-03-31")})
	s.Require().NoError(err)
	err = s.service.DeletePerson(ctx, s.fixtures.person.ID)
	s.True(ierr.IsAlreadyExists(err))

	s.Require().NoError(s.rentals.DeleteRental(ctx, rent.ID))
	s.Require().NoError(s.service.DeletePerson(ctx, s.fixtures.person.ID))
	_, err = s.service.GetPerson(ctx, s.fixtures.person.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *PersonServiceSuite) TestListPersonsByName() {
	ctx := s.GetContext()
	_, err := s.service.CreatePerson(ctx, dto.CreatePersonRequest{Name: "Juana Pérez"})
	s.Require().NoError(err)
	_, err = s.service.CreatePerson(ctx, dto.CreatePersonRequest{Name: "Luis Gómez"})
	s.Require().NoError(err)

	filter := types.NewPersonFilter()
	filter.Name = lo.ToPtr("pérez")
	resp, err := s.service.ListPersons(ctx, filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
}
