package service

import (
	"context"
	"fmt"
	"time"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/flexprice/rvpark/internal/domain/payment"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/spot"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// PaymentService records monthly payments against rentals
type PaymentService interface {
	RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
	UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	DeletePayment(ctx context.Context, id string) error
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	paymentDate, err := req.Date()
	if err != nil {
		return nil, err
	}

	period := s.Calculator.ComputePeriodFor(paymentDate)

	amount := s.Calculator.MonthlyRate()
	if req.Amount != nil {
		amount = *req.Amount
	}

	reference := fmt.Sprintf("Pago mensual - %s", period)
	if req.Reference != nil && *req.Reference != "" {
		reference = *req.Reference
	}

	var pay *payment.Payment
	var rent *rental.Rental
	var sp *spot.Spot
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		rent, err = s.RentalRepo.GetForUpdate(txCtx, req.RentalID)
		if err != nil {
			return err
		}

		if rent.IsClosed(s.Config.Billing.Today(time.Now())) {
			return ierr.NewErrorf("rental %s ended on %s", rent.ID, types.FormatDate(*rent.EndDate)).
				WithHint("Cannot register a payment for a rental that has ended").
				WithReportableDetails(map[string]any{
					"rental_id": rent.ID,
					"end_date":  types.FormatDate(*rent.EndDate),
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		if err := s.ensurePeriodFree(txCtx, rent.ID, period, ""); err != nil {
			return err
		}

		pay = newPayment(ctx, rent.ID, paymentDate, amount, period, req.PaymentMethod, reference)
		if err := pay.Validate(); err != nil {
			return err
		}
		if err := s.PaymentRepo.Create(txCtx, pay); err != nil {
			return err
		}

		if rent.PaymentStatus != types.RentalPaymentStatusPaid {
			rent.PaymentStatus = types.RentalPaymentStatusPaid
			rent.Touch(ctx, time.Now().UTC())
			if err := s.RentalRepo.Update(txCtx, rent); err != nil {
				return err
			}
		}

		sp, err = s.SpotRepo.GetForUpdate(txCtx, rent.SpotID)
		if err != nil {
			return err
		}
		// a terminated rental released its spot already, a late payment must not take it back
		if !rent.IsActive() {
			return nil
		}
		_, err = applySpotEvent(txCtx, s.SpotRepo, sp, spot.EventPaymentRegistered)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("registered payment",
		"payment_id", pay.ID,
		"rental_id", rent.ID,
		"period", period,
		"amount", amount.String(),
	)

	s.AuditRecorder.Record(ctx, types.AuditActionRegisterPayment, types.AuditTablePayments, map[string]any{
		"payment_id": pay.ID,
		"rental_id":  rent.ID,
		"amount":     amount.String(),
		"period":     period,
	})

	return &dto.PaymentResponse{Payment: pay, Rental: rent, Spot: sp}, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("payment_id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation)
	}

	pay, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rent, err := s.RentalRepo.Get(ctx, pay.RentalID)
	if err != nil {
		return nil, err
	}

	sp, err := s.SpotRepo.Get(ctx, rent.SpotID)
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{Payment: pay, Rental: rent, Spot: sp}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, len(payments))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(graphLoadConcurrency)
	for i, pay := range payments {
		i, pay := i, pay
		p.Go(func(ctx context.Context) error {
			rent, err := s.RentalRepo.Get(ctx, pay.RentalID)
			if err != nil {
				return err
			}
			items[i] = &dto.PaymentResponse{Payment: pay, Rental: rent}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var pay *payment.Payment
	var rent *rental.Rental
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		pay, err = s.PaymentRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		// lock the rental so a concurrent registration cannot take the same period
		rent, err = s.RentalRepo.GetForUpdate(txCtx, pay.RentalID)
		if err != nil {
			return err
		}

		if req.PaymentDate != nil {
			date, err := types.ParseDate(*req.PaymentDate)
			if err != nil {
				return err
			}
			period := s.Calculator.ComputePeriodFor(date)
			if period != pay.Period {
				if err := s.ensurePeriodFree(txCtx, pay.RentalID, period, pay.ID); err != nil {
					return err
				}
			}
			pay.PaymentDate = date
			pay.Period = period
		}
		if req.Amount != nil {
			pay.Amount = *req.Amount
		}
		if req.PaymentMethod != nil {
			pay.PaymentMethod = *req.PaymentMethod
		}
		if req.Reference != nil {
			pay.Reference = *req.Reference
		}

		pay.Touch(ctx, time.Now().UTC())
		if err := pay.Validate(); err != nil {
			return err
		}
		return s.PaymentRepo.Update(txCtx, pay)
	})
	if err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionUpdatePayment, types.AuditTablePayments, map[string]any{
		"payment_id": pay.ID,
		"changes":    req,
	})

	return &dto.PaymentResponse{Payment: pay, Rental: rent}, nil
}

// DeletePayment removes a payment. Removing the last payment of a rental
// marks it pending again; the spot is never released here.
func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	var pay *payment.Payment
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		pay, err = s.PaymentRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		rent, err := s.RentalRepo.GetForUpdate(txCtx, pay.RentalID)
		if err != nil {
			return err
		}

		filter := types.NewNoLimitPaymentFilter()
		filter.RentalID = &rent.ID
		count, err := s.PaymentRepo.Count(txCtx, filter)
		if err != nil {
			return err
		}

		if count == 1 {
			rent.PaymentStatus = types.RentalPaymentStatusPending
			rent.Touch(ctx, time.Now().UTC())
			if err := s.RentalRepo.Update(txCtx, rent); err != nil {
				return err
			}
		}

		return s.PaymentRepo.Delete(txCtx, pay.ID)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("deleted payment", "payment_id", pay.ID, "rental_id", pay.RentalID, "period", pay.Period)

	s.AuditRecorder.Record(ctx, types.AuditActionDeletePayment, types.AuditTablePayments, map[string]any{
		"payment_id": pay.ID,
		"rental_id":  pay.RentalID,
		"period":     pay.Period,
	})
	return nil
}

// ensurePeriodFree fails with a conflict when the rental already has a
// payment for period other than the one being edited
func (s *paymentService) ensurePeriodFree(ctx context.Context, rentalID, period, exceptID string) error {
	existing, err := s.PaymentRepo.GetByPeriod(ctx, rentalID, period)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID == exceptID {
		return nil
	}
	return ierr.NewErrorf("rental %s already has a payment for period %s", rentalID, period).
		WithHintf("A payment is already registered for period %s", period).
		WithReportableDetails(map[string]any{
			"rental_id":  rentalID,
			"period":     period,
			"payment_id": existing.ID,
		}).
		Mark(ierr.ErrAlreadyExists)
}

func newPayment(
	ctx context.Context,
	rentalID string,
	date time.Time,
	amount decimal.Decimal,
	period string,
	method types.PaymentMethod,
	reference string,
) *payment.Payment {
	return &payment.Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		RentalID:      rentalID,
		PaymentDate:   types.DateOnly(date),
		Amount:        amount,
		Period:        period,
		PaymentMethod: method,
		Reference:     reference,
		ReceiptNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RECEIPT),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}
