package service

import (
	"sync"
	"testing"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/testutil"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	rentals  RentalService
	fixtures fixtures
	rental   *dto.RentalResponse
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewPaymentService(params)
	s.rentals = NewRentalService(params)
	s.fixtures = seedFixtures(&s.BaseServiceTestSuite)

	var err error
	s.rental, err = s.rentals.CreateRental(s.GetContext(), dto.CreateRentalRequest{
		PersonID:      s.fixtures.person.ID,
		SpotID:        s.fixtures.spot.ID,
		StartDate:     "2024-02-10",
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Require().NoError(err)
	s.GetAuditRecorder().Clear()
}

func (s *PaymentServiceSuite) register(date string) (*dto.PaymentResponse, error) {
	return s.service.RegisterPayment(s.GetContext(), dto.RegisterPaymentRequest{
		RentalID:      s.rental.ID,
		PaymentDate:   date,
		PaymentMethod: types.PaymentMethodTransfer,
	})
}

func (s *PaymentServiceSuite) TestRegisterPaymentDefaults() {
	resp, err := s.register("2024-03-05")
	s.Require().NoError(err)

	s.Equal("2024-03", resp.Period)
	s.True(decimal.NewFromInt(1200).Equal(resp.Amount))
	s.Equal("Pago mensual - 2024-03", resp.Reference)
	s.Equal(types.PaymentMethodTransfer, resp.PaymentMethod)
	s.NotEmpty(resp.ReceiptNumber)

	s.Require().NotNil(resp.Rental)
	s.Equal(types.RentalPaymentStatusPaid, resp.Rental.PaymentStatus)
	s.Require().NotNil(resp.Spot)
	s.Equal(types.SpotStatusPaid, resp.Spot.Status)

	s.Equal([]types.AuditAction{types.AuditActionRegisterPayment}, s.GetAuditRecorder().Actions())
}

func (s *PaymentServiceSuite) TestRegisterPaymentExplicitValues() {
	resp, err := s.service.RegisterPayment(s.GetContext(), dto.RegisterPaymentRequest{
		RentalID:      s.rental.ID,
		PaymentDate:   "2024-04-02",
		Amount:        lo.ToPtr(decimal.Zero),
		PaymentMethod: types.PaymentMethodCard,
		Reference:     lo.ToPtr("cortesía"),
	})
	s.Require().NoError(err)

	s.True(resp.Amount.IsZero())
	s.Equal("cortesía", resp.Reference)
	s.Equal("2024-04", resp.Period)
}

func (s *PaymentServiceSuite) TestRegisterPaymentValidation() {
	testCases := []struct {
		name string
		req  dto.RegisterPaymentRequest
	}{
		{
			name: "negative_amount",
			req: dto.RegisterPaymentRequest{
				RentalID:      s.rental.ID,
				PaymentDate:   "2024-03-05",
				Amount:        lo.ToPtr(decimal.NewFromInt(-1)),
				PaymentMethod: types.PaymentMethodCash,
			},
		},
		{
			name: "bad_date",
			req: dto.RegisterPaymentRequest{
				RentalID:      s.rental.ID,
				PaymentDate:   "2024-13-01",
				PaymentMethod: types.PaymentMethodCash,
			},
		},
		{
			name: "unknown_method",
			req: dto.RegisterPaymentRequest{
				RentalID:      s.rental.ID,
				PaymentDate:   "2024-03-05",
				PaymentMethod: "Bitcoin",
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.RegisterPayment(s.GetContext(), tc.req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func (s *PaymentServiceSuite) TestRegisterPaymentDuplicatePeriodConflicts() {
	// the initial payment already covers February
	_, err := s.register("2024-02-25")
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))

	_, err = s.register("2024-03-01")
	s.Require().NoError(err)
	_, err = s.register("2024-03-31")
	s.True(ierr.IsAlreadyExists(err))

	filter := types.NewNoLimitPaymentFilter()
	filter.RentalID = &s.rental.ID
	count, err := s.GetStores().PaymentRepo.Count(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *PaymentServiceSuite) TestConcurrentRegisterPaymentSamePeriodOnlyOneWins() {
	ctx := s.GetContext()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.register("2024-03-15")
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

	// the initial payment plus the single March payment
	filter := types.NewNoLimitPaymentFilter()
	filter.RentalID = &s.rental.ID
	count, err := s.GetStores().PaymentRepo.Count(ctx, filter)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *PaymentServiceSuite) TestRegisterPaymentUnknownRental() {
	_, err := s.service.RegisterPayment(s.GetContext(), dto.RegisterPaymentRequest{
		RentalID:      "rent_missing",
		PaymentDate:   "2024-03-05",
		PaymentMethod: types.PaymentMethodCash,
	})
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestRegisterPaymentOnClosedRentalFails() {
	ctx := s.GetContext()
	_, err := s.rentals.UpdateRental(ctx, s.rental.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr("2024-03-31"),
	})
	s.Require().NoError(err)

	_, err = s.register("2024-03-05")
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// termination released the spot and a rejected payment must not take it back
	s.Equal(types.SpotStatusAvailable, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
}

func (s *PaymentServiceSuite) TestRegisterPaymentOnTerminatedRentalKeepsSpotAvailable() {
	ctx := s.GetContext()
	end := today().AddDate(0, 1, 0)
	_, err := s.rentals.UpdateRental(ctx, s.rental.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr(dateString(end)),
	})
	s.Require().NoError(err)
	s.Require().Equal(types.SpotStatusAvailable, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))

	// the rental still runs until its end date, so it accepts payments
	resp, err := s.register("2024-03-05")
	s.Require().NoError(err)
	s.Equal(types.RentalPaymentStatusPaid, resp.Rental.PaymentStatus)

	s.Equal(types.SpotStatusAvailable, resp.Spot.Status)
	s.Equal(types.SpotStatusAvailable, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
}

func (s *PaymentServiceSuite) TestRegisterPaymentUsesParkCalendarDay() {
	ctx := s.GetContext()
	billing := &s.GetConfig().Billing
	previous := billing.Timezone
	billing.Timezone = "Pacific/Pago_Pago"
	defer func() { billing.Timezone = previous }()

	// the last day of the rental in the park is still open even when UTC has moved on
	parkToday := billing.Today(time.Now())
	_, err := s.rentals.UpdateRental(ctx, s.rental.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr(dateString(parkToday)),
	})
	s.Require().NoError(err)

	_, err = s.register("2024-03-05")
	s.Require().NoError(err)

	// the day after it ends the rental is closed
	_, err = s.rentals.UpdateRental(ctx, s.rental.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr(dateString(parkToday.AddDate(0, 0, -1))),
	})
	s.Require().NoError(err)

	_, err = s.register("2024-04-05")
	s.True(ierr.IsInvalidOperation(err), "expected invalid operation, got %v", err)
}

func (s *PaymentServiceSuite) TestRegisterPaymentKeepsHold() {
	ctx := s.GetContext()
	sp, err := s.GetStores().SpotRepo.Get(ctx, s.fixtures.spot.ID)
	s.Require().NoError(err)
	sp.Status = types.SpotStatusWorker
	s.Require().NoError(s.GetStores().SpotRepo.Update(ctx, sp))

	resp, err := s.register("2024-03-05")
	s.Require().NoError(err)
	s.Equal(types.SpotStatusWorker, resp.Spot.Status)
	s.Equal(types.SpotStatusWorker, spotStatus(ctx, &s.BaseServiceTestSuite, sp.ID))

	// terminating the rental leaves the hold too
	_, err = s.rentals.UpdateRental(ctx, s.rental.ID, dto.UpdateRentalRequest{
		EndDate: lo.ToPtr("2024-03-31"),
	})
	s.Require().NoError(err)
	s.Equal(types.SpotStatusWorker, spotStatus(ctx, &s.BaseServiceTestSuite, sp.ID))
}

func (s *PaymentServiceSuite) TestRegisterPaymentMarksPendingRentalPaid() {
	ctx := s.GetContext()
	_, err := s.rentals.UpdateRental(ctx, s.rental.ID, dto.UpdateRentalRequest{
		PaymentStatus: lo.ToPtr(types.RentalPaymentStatusPending),
	})
	s.Require().NoError(err)

	resp, err := s.register("2024-03-05")
	s.Require().NoError(err)
	s.Equal(types.RentalPaymentStatusPaid, resp.Rental.PaymentStatus)

	stored, err := s.GetStores().RentalRepo.Get(ctx, s.rental.ID)
	s.Require().NoError(err)
	s.Equal(types.RentalPaymentStatusPaid, stored.PaymentStatus)
}

func (s *PaymentServiceSuite) TestDeleteOnlyPaymentMarksRentalPending() {
	ctx := s.GetContext()
	s.Require().Len(s.rental.Payments, 1)

	s.Require().NoError(s.service.DeletePayment(ctx, s.rental.Payments[0].ID))

	stored, err := s.GetStores().RentalRepo.Get(ctx, s.rental.ID)
	s.Require().NoError(err)
	s.Equal(types.RentalPaymentStatusPending, stored.PaymentStatus)
	// the spot stays occupied
	s.Equal(types.SpotStatusPaid, spotStatus(ctx, &s.BaseServiceTestSuite, s.fixtures.spot.ID))
	s.Equal([]types.AuditAction{types.AuditActionDeletePayment}, s.GetAuditRecorder().Actions())
}

func (s *PaymentServiceSuite) TestDeleteOneOfSeveralPaymentsKeepsRentalPaid() {
	ctx := s.GetContext()
	second, err := s.register("2024-03-05")
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeletePayment(ctx, second.ID))

	stored, err := s.GetStores().RentalRepo.Get(ctx, s.rental.ID)
	s.Require().NoError(err)
	s.Equal(types.RentalPaymentStatusPaid, stored.PaymentStatus)

	_, err = s.GetStores().PaymentRepo.Get(ctx, second.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestDeletePaymentNotFound() {
	err := s.service.DeletePayment(s.GetContext(), "pay_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestUpdatePaymentMovesPeriod() {
	ctx := s.GetContext()
	march, err := s.register("2024-03-05")
	s.Require().NoError(err)

	resp, err := s.service.UpdatePayment(ctx, march.ID, dto.UpdatePaymentRequest{
		PaymentDate: lo.ToPtr("2024-04-03"),
		Amount:      lo.ToPtr(decimal.NewFromInt(1100)),
	})
	s.Require().NoError(err)
	s.Equal("2024-04", resp.Period)
	s.True(decimal.NewFromInt(1100).Equal(resp.Amount))

	// February is taken by the initial payment
	_, err = s.service.UpdatePayment(ctx, march.ID, dto.UpdatePaymentRequest{
		PaymentDate: lo.ToPtr("2024-02-20"),
	})
	s.True(ierr.IsAlreadyExists(err))

	stored, err := s.GetStores().PaymentRepo.Get(ctx, march.ID)
	s.Require().NoError(err)
	s.Equal("2024-04", stored.Period)
}

func (s *PaymentServiceSuite) TestUpdatePaymentSamePeriodIsAllowed() {
	ctx := s.GetContext()
	initial := s.rental.Payments[0]

	resp, err := s.service.UpdatePayment(ctx, initial.ID, dto.UpdatePaymentRequest{
		PaymentDate:   lo.ToPtr("2024-02-12"),
		PaymentMethod: lo.ToPtr(types.PaymentMethodCard),
		Reference:     lo.ToPtr("ajuste"),
	})
	s.Require().NoError(err)
	s.Equal("2024-02", resp.Period)
	s.Equal(types.PaymentMethodCard, resp.PaymentMethod)
	s.Equal("ajuste", resp.Reference)
}

func (s *PaymentServiceSuite) TestListAndGetPayments() {
	ctx := s.GetContext()
	_, err := s.register("2024-03-05")
	s.Require().NoError(err)

	filter := types.NewPaymentFilter()
	filter.RentalID = &s.rental.ID
	list, err := s.service.ListPayments(ctx, filter)
	s.Require().NoError(err)
	s.Require().Len(list.Items, 2)
	s.Equal(2, list.Pagination.Total)
	// newest payment first
	s.Equal("2024-03", list.Items[0].Period)
	s.Equal("2024-02", list.Items[1].Period)
	s.NotNil(list.Items[0].Rental)

	got, err := s.service.GetPayment(ctx, list.Items[0].ID)
	s.Require().NoError(err)
	s.Equal(list.Items[0].ID, got.ID)
	s.Require().NotNil(got.Spot)
	s.Equal(s.fixtures.spot.ID, got.Spot.ID)

	_, err = s.service.GetPayment(ctx, "")
	s.True(ierr.IsValidation(err))
}
