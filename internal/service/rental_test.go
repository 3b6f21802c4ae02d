package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/flexprice/rvpark/internal/domain/payment"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/testutil"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RentalServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  RentalService
	fixtures fixtures
}

func TestRentalService(t *testing.T) {
	suite.Run(t, new(RentalServiceSuite))
}

func (s *RentalServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRentalService(newTestServiceParams(&s.BaseServiceTestSuite))
	s.fixtures = seedFixtures(&s.BaseServiceTestSuite)
}

func (s *RentalServiceSuite) createRequest(start string) dto.CreateRentalRequest {
	return dto.CreateRentalRequest{
		PersonID:      s.fixtures.person.ID,
		SpotID:        s.fixtures.spot.ID,
		StartDate:     start,
		PaymentMethod: types.PaymentMethodCash,
	}
}

func (s *RentalServiceSuite) TestCreateRentalProratesFirstMonth() {
	ctx := s.GetContext()

	resp, err := s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().NoError(err)

	s.Require().NotNil(resp.FirstPeriod)
	s.True(decimal.RequireFromString("827.59").Equal(resp.FirstPeriod.Amount), "got %s", resp.FirstPeriod.Amount)
	s.Equal(20, resp.FirstPeriod.RemainingDays)
	s.Equal(29, resp.FirstPeriod.MonthLength)
	s.Equal("2024-02", resp.FirstPeriod.Period)
	s.True(decimal.NewFromInt(1200).Equal(resp.FirstPeriod.MonthlyRate))

	s.True(resp.TotalAmount.Equal(resp.FirstPeriod.Amount))
	s.Equal(types.RentalPaymentStatusPaid, resp.PaymentStatus)
	s.True(resp.IsActive())
	s.Nil(resp.TotalDays)

	s.Require().Len(resp.Payments, 1)
	initial := resp.Payments[0]
	s.Equal("2024-02", initial.Period)
	s.True(initial.Amount.Equal(resp.FirstPeriod.Amount))
	s.Equal("Pago inicial - 20 días de 29", initial.Reference)
	s.NotEmpty(initial.ReceiptNumber)

	s.Require().NotNil(resp.Spot)
	s.Equal(types.SpotStatusPaid, resp.Spot.Status)
	s.Equal(types.SpotStatusPaid, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
	s.Require().NotNil(resp.Person)
	s.Equal(s.fixtures.person.ID, resp.Person.ID)

	s.Equal([]types.AuditAction{types.AuditActionCreateRental}, s.GetAuditRecorder().Actions())
}

func (s *RentalServiceSuite) TestCreateRentalOnFirstOfMonthChargesFullRate() {
	resp, err := s.service.CreateRental(s.GetContext(), s.createRequest("2024-03-01"))
	s.Require().NoError(err)

	s.True(decimal.NewFromInt(1200).Equal(resp.FirstPeriod.Amount))
	s.Equal(31, resp.FirstPeriod.RemainingDays)
	s.Equal(31, resp.FirstPeriod.MonthLength)
}

func (s *RentalServiceSuite) TestCreateRentalWithEndDateCountsDaysInclusively() {
	req := s.createRequest("2024-02-10")
	req.EndDate = lo.ToPtr("2024-02-20")

	resp, err := s.service.CreateRental(s.GetContext(), req)
	s.Require().NoError(err)

	s.Require().NotNil(resp.TotalDays)
	s.Equal(11, *resp.TotalDays)
}

func (s *RentalServiceSuite) TestCreateRentalValidation() {
	testCases := []struct {
		name   string
		mutate func(r *dto.CreateRentalRequest)
	}{
		{
			name:   "end_before_start",
			mutate: func(r *dto.CreateRentalRequest) { r.EndDate = lo.ToPtr("2024-02-01") },
		},
		{
			name:   "malformed_start",
			mutate: func(r *dto.CreateRentalRequest) { r.StartDate = "10/02/2024" },
		},
		{
			name:   "unknown_payment_method",
			mutate: func(r *dto.CreateRentalRequest) { r.PaymentMethod = "Cheque" },
		},
		{
			name:   "missing_person",
			mutate: func(r *dto.CreateRentalRequest) { r.PersonID = "" },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.createRequest("2024-02-10")
			tc.mutate(&req)

			_, err := s.service.CreateRental(s.GetContext(), req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	s.Equal(types.SpotStatusAvailable, spotStatus(s.GetContext(), &s.BaseServiceTestSuite, s.fixtures.spot.ID))
}

func (s *RentalServiceSuite) TestCreateRentalUnknownReferences() {
	req := s.createRequest("2024-02-10")
	req.PersonID = "per_missing"
	_, err := s.service.CreateRental(s.GetContext(), req)
	s.True(ierr.IsNotFound(err))

	req = s.createRequest("2024-02-10")
	req.SpotID = "spot_missing"
	_, err = s.service.CreateRental(s.GetContext(), req)
	s.True(ierr.IsNotFound(err))

	// a failed create leaves nothing behind
	count, err := s.GetStores().RentalRepo.Count(s.GetContext(), types.NewNoLimitRentalFilter())
	s.Require().NoError(err)
	s.Zero(count)
	s.Equal(types.SpotStatusAvailable, spotStatus(s.GetContext(), &s.BaseServiceTestSuite, s.fixtures.spot.ID))
}

func (s *RentalServiceSuite) TestCreateRentalOnOccupiedSpotConflicts() {
	ctx := s.GetContext()

	_, err := s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().NoError(err)

	_, err = s.service.CreateRental(ctx, s.createRequest("2024-02-15"))
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))

	count, err := s.GetStores().RentalRepo.Count(ctx, types.NewNoLimitRentalFilter())
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *RentalServiceSuite) TestCreateRentalOnHeldSpotConflicts() {
	ctx := s.GetContext()
	sp, err := s.GetStores().SpotRepo.Get(ctx, s.fixtures.spot.ID)
	s.Require().NoError(err)
	sp.Status = types.SpotStatusCaliche
	s.Require().NoError(s.GetStores().SpotRepo.Update(ctx, sp))

	_, err = s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
	s.Equal(types.SpotStatusCaliche, spotStatus(ctx, &s.BaseServiceTestSuite, sp.ID))
}

func (s *RentalServiceSuite) TestConcurrentCreateRentalOnlyOneWins() {
	ctx := s.GetContext()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
		}(i)
	}
	wg.Wait()

	succeeded := lo.CountBy(errs, func(err error) bool { return err == nil })
	s.Equal(1, succeeded)
	for _, err := range errs {
		if err != nil {
			s.True(ierr.IsAlreadyExists(err), "unexpected error %v", err)
		}
	}

	count, err := s.GetStores().PaymentRepo.Count(ctx, types.NewNoLimitPaymentFilter())
	s.Require().NoError(err)
	s.Equal(1, count)
}

// failingPaymentRepo fails every payment insert
type failingPaymentRepo struct {
	payment.Repository
}

func (r *failingPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	return ierr.NewError("insert failed").Mark(ierr.ErrDatabase)
}

func (s *RentalServiceSuite) TestCreateRentalRollsBackWhenPaymentFails() {
	ctx := s.GetContext()

	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.PaymentRepo = &failingPaymentRepo{Repository: s.GetStores().PaymentRepo}
	svc := NewRentalService(params)

	_, err := svc.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().Error(err)
	s.True(ierr.IsDatabase(err))

	count, err := s.GetStores().RentalRepo.Count(ctx, types.NewNoLimitRentalFilter())
	s.Require().NoError(err)
	s.Zero(count)
	s.Equal(types.SpotStatusAvailable, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
	s.Empty(s.GetAuditRecorder().Actions())
}

func (s *RentalServiceSuite) TestUpdateRentalTerminationReleasesSpot() {
	ctx := s.GetContext()

	created, err := s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().NoError(err)

	resp, err := s.service.UpdateRental(ctx, created.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr("2024-03-10"),
	})
	s.Require().NoError(err)

	s.False(resp.IsActive())
	s.Require().NotNil(resp.TotalDays)
	s.Equal(30, *resp.TotalDays)
	s.Equal(types.SpotStatusAvailable, resp.Spot.Status)

	// a new tenant can take the spot right away
	_, err = s.service.CreateRental(ctx, s.createRequest("2024-03-11"))
	s.Require().NoError(err)
}

func (s *RentalServiceSuite) TestUpdateRentalRecomputesTotalDaysOnStartChange() {
	ctx := s.GetContext()

	req := s.createRequest("2024-02-10")
	req.EndDate = lo.ToPtr("2024-02-20")
	created, err := s.service.CreateRental(ctx, req)
	s.Require().NoError(err)

	resp, err := s.service.UpdateRental(ctx, created.ID, dto.UpdateRentalRequest{
		StartDate: lo.ToPtr("2024-02-15"),
	})
	s.Require().NoError(err)
	s.Require().NotNil(resp.TotalDays)
	s.Equal(6, *resp.TotalDays)

	_, err = s.service.UpdateRental(ctx, created.ID, dto.UpdateRentalRequest{
		StartDate: lo.ToPtr("2024-02-25"),
	})
	s.True(ierr.IsValidation(err))

	stored, err := s.GetStores().RentalRepo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("2024-02-15", types.FormatDate(stored.StartDate))
}

func (s *RentalServiceSuite) TestUpdateRentalPatchesFields() {
	ctx := s.GetContext()

	created, err := s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().NoError(err)

	resp, err := s.service.UpdateRental(ctx, created.ID, dto.UpdateRentalRequest{
		PaymentMethod: lo.ToPtr(types.PaymentMethodTransfer),
		PaymentStatus: lo.ToPtr(types.RentalPaymentStatusPending),
		TotalAmount:   lo.ToPtr(decimal.NewFromInt(900)),
		Notes:         lo.ToPtr("pays on the 15th"),
	})
	s.Require().NoError(err)

	s.Equal(types.PaymentMethodTransfer, resp.PaymentMethod)
	s.Equal(types.RentalPaymentStatusPending, resp.PaymentStatus)
	s.True(decimal.NewFromInt(900).Equal(resp.TotalAmount))
	s.Equal("pays on the 15th", resp.Notes)
	s.True(resp.IsActive())
	s.Equal(types.SpotStatusPaid, resp.Spot.Status)
}

func (s *RentalServiceSuite) TestDeleteRentalCascadesAndReleasesSpot() {
	ctx := s.GetContext()

	created, err := s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteRental(ctx, created.ID))

	_, err = s.GetStores().RentalRepo.Get(ctx, created.ID)
	s.True(ierr.IsNotFound(err))

	filter := types.NewNoLimitPaymentFilter()
	filter.RentalID = &created.ID
	count, err := s.GetStores().PaymentRepo.Count(ctx, filter)
	s.Require().NoError(err)
	s.Zero(count)

	s.Equal(types.SpotStatusAvailable, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
	s.Equal([]types.AuditAction{
		types.AuditActionCreateRental,
		types.AuditActionDeleteRental,
	}, s.GetAuditRecorder().Actions())
}

func (s *RentalServiceSuite) TestDeleteEndedRentalKeepsNewTenantsSpot() {
	ctx := s.GetContext()

	old, err := s.service.CreateRental(ctx, s.createRequest("2024-01-01"))
	s.Require().NoError(err)
	_, err = s.service.UpdateRental(ctx, old.ID, dto.UpdateRentalRequest{EndDate: lo.ToPtr("2024-01-31")})
	s.Require().NoError(err)

	_, err = s.service.CreateRental(ctx, s.createRequest("2024-02-01"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteRental(ctx, old.ID))
	s.Equal(types.SpotStatusPaid, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
}

func (s *RentalServiceSuite) TestDeleteRentalNotFound() {
	err := s.service.DeleteRental(s.GetContext(), "rent_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *RentalServiceSuite) TestListRentals() {
	ctx := s.GetContext()
	other := seedSpot(&s.BaseServiceTestSuite, s.fixtures.park.ID, "A-02")

	first, err := s.service.CreateRental(ctx, s.createRequest("2024-01-05"))
	s.Require().NoError(err)

	req := s.createRequest("2024-03-05")
	req.SpotID = other.ID
	second, err := s.service.CreateRental(ctx, req)
	s.Require().NoError(err)

	resp, err := s.service.ListRentals(ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
	// newest start first
	s.Equal(second.ID, resp.Items[0].ID)
	s.Equal(first.ID, resp.Items[1].ID)
	s.NotNil(resp.Items[0].Person)
	s.NotNil(resp.Items[0].Spot)
	s.Len(resp.Items[0].Payments, 1)

	filter := types.NewRentalFilter()
	filter.SpotID = &other.ID
	resp, err = s.service.ListRentals(ctx, filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(second.ID, resp.Items[0].ID)
}

func (s *RentalServiceSuite) TestGetRental() {
	ctx := s.GetContext()

	created, err := s.service.CreateRental(ctx, s.createRequest("2024-02-10"))
	s.Require().NoError(err)

	resp, err := s.service.GetRental(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, resp.ID)
	s.Nil(resp.FirstPeriod)
	s.Len(resp.Payments, 1)

	_, err = s.service.GetRental(ctx, "")
	s.True(ierr.IsValidation(err))

	_, err = s.service.GetRental(ctx, "rent_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *RentalServiceSuite) TestRentalEndingTodayIsNotClosed() {
	ctx := s.GetContext()
	start := today().AddDate(0, 0, -3)

	created, err := s.service.CreateRental(ctx, s.createRequest(dateString(start)))
	s.Require().NoError(err)

	resp, err := s.service.UpdateRental(ctx, created.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr(dateString(today())),
	})
	s.Require().NoError(err)
	s.False(resp.IsClosed(time.Now().UTC()))
	s.Equal(4, lo.FromPtr(resp.TotalDays))
}
