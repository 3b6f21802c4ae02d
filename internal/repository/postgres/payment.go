package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/payment"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var paymentSortColumns = map[string]bool{
	"created_at":   true,
	"payment_date": true,
	"period":       true,
	"amount":       true,
}

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			id, rental_id, payment_date, amount, period, payment_method, reference,
			receipt_number, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :rental_id, :payment_date, :amount, :period, :payment_method, :reference,
			:receipt_number, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating payment",
		"payment_id", p.ID,
		"rental_id", p.RentalID,
		"period", p.Period,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	return postgres.TranslateError(err, "Payment")
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, "SELECT * FROM payments WHERE id = $1", id); err != nil {
		return nil, postgres.TranslateError(err, "Payment")
	}
	p.PaymentDate = types.DateOnly(p.PaymentDate)
	return &p, nil
}

func (r *paymentRepository) GetByPeriod(ctx context.Context, rentalID, period string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p,
		"SELECT * FROM payments WHERE rental_id = $1 AND period = $2", rentalID, period)
	if err != nil {
		return nil, postgres.TranslateError(err, "Payment")
	}
	p.PaymentDate = types.DateOnly(p.PaymentDate)
	return &p, nil
}

func (r *paymentRepository) where(filter *types.PaymentFilter) *whereClause {
	w := &whereClause{}
	if filter == nil {
		return w
	}
	if filter.RentalID != nil {
		w.add("rental_id = ?", *filter.RentalID)
	}
	if filter.Period != nil {
		w.add("period = ?", *filter.Period)
	}
	return w
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = types.NewNoLimitPaymentFilter()
	}
	w := r.where(filter)
	page, pageArgs := orderAndPage(filter.QueryFilter, paymentSortColumns, "payment_date")

	q := r.db.GetQuerier(ctx)
	payments := make([]*payment.Payment, 0)
	err := q.SelectContext(ctx, &payments, q.Rebind("SELECT * FROM payments"+w.String()+page), append(w.args, pageArgs...)...)
	if err != nil {
		return nil, postgres.TranslateError(err, "Payment")
	}
	for _, p := range payments {
		p.PaymentDate = types.DateOnly(p.PaymentDate)
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	w := r.where(filter)
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM payments"+w.String()), w.args...); err != nil {
		return 0, postgres.TranslateError(err, "Payment")
	}
	return count, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	query := `
		UPDATE payments SET
			payment_date = :payment_date,
			amount = :amount,
			period = :period,
			payment_method = :payment_method,
			reference = :reference,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating payment", "payment_id", p.ID, "period", p.Period)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return postgres.TranslateError(err, "Payment")
	}
	return expectOneRow(result, "Payment", p.ID)
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting payment", "payment_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err, "Payment")
	}
	return expectOneRow(result, "Payment", id)
}

func (r *paymentRepository) DeleteByRental(ctx context.Context, rentalID string) error {
	r.logger.Debugw("deleting payments of rental", "rental_id", rentalID)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, "DELETE FROM payments WHERE rental_id = $1", rentalID)
	return postgres.TranslateError(err, "Payment")
}
