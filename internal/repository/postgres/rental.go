package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var rentalSortColumns = map[string]bool{
	"created_at": true,
	"start_date": true,
	"end_date":   true,
}

type rentalRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRentalRepository(db *postgres.DB, logger *logger.Logger) rental.Repository {
	return &rentalRepository{db: db, logger: logger}
}

func (r *rentalRepository) Create(ctx context.Context, rent *rental.Rental) error {
	query := `
		INSERT INTO rentals (
			id, person_id, spot_id, start_date, end_date, total_days, total_amount,
			payment_status, payment_method, notes, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :person_id, :spot_id, :start_date, :end_date, :total_days, :total_amount,
			:payment_status, :payment_method, :notes, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating rental",
		"rental_id", rent.ID,
		"spot_id", rent.SpotID,
		"person_id", rent.PersonID,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rent)
	return postgres.TranslateError(err, "Rental")
}

func (r *rentalRepository) Get(ctx context.Context, id string) (*rental.Rental, error) {
	return r.get(ctx, "SELECT * FROM rentals WHERE id = $1", id)
}

func (r *rentalRepository) GetForUpdate(ctx context.Context, id string) (*rental.Rental, error) {
	return r.get(ctx, "SELECT * FROM rentals WHERE id = $1 FOR UPDATE", id)
}

func (r *rentalRepository) GetActiveBySpot(ctx context.Context, spotID string) (*rental.Rental, error) {
	return r.get(ctx, "SELECT * FROM rentals WHERE spot_id = $1 AND end_date IS NULL", spotID)
}

func (r *rentalRepository) get(ctx context.Context, query string, arg string) (*rental.Rental, error) {
	var rent rental.Rental
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rent, query, arg); err != nil {
		return nil, postgres.TranslateError(err, "Rental")
	}
	normalizeRentalDates(&rent)
	return &rent, nil
}

func (r *rentalRepository) where(filter *types.RentalFilter) *whereClause {
	w := &whereClause{}
	if filter == nil {
		return w
	}
	if filter.PaymentStatus != nil {
		w.add("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.PersonID != nil {
		w.add("person_id = ?", *filter.PersonID)
	}
	if filter.SpotID != nil {
		w.add("spot_id = ?", *filter.SpotID)
	}
	if filter.ActiveOnly {
		w.add("end_date IS NULL")
	}
	return w
}

func (r *rentalRepository) List(ctx context.Context, filter *types.RentalFilter) ([]*rental.Rental, error) {
	if filter == nil {
		filter = types.NewNoLimitRentalFilter()
	}
	w := r.where(filter)
	page, pageArgs := orderAndPage(filter.QueryFilter, rentalSortColumns, "start_date")

	q := r.db.GetQuerier(ctx)
	rentals := make([]*rental.Rental, 0)
	err := q.SelectContext(ctx, &rentals, q.Rebind("SELECT * FROM rentals"+w.String()+page), append(w.args, pageArgs...)...)
	if err != nil {
		return nil, postgres.TranslateError(err, "Rental")
	}
	for _, rent := range rentals {
		normalizeRentalDates(rent)
	}
	return rentals, nil
}

func (r *rentalRepository) Count(ctx context.Context, filter *types.RentalFilter) (int, error) {
	w := r.where(filter)
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM rentals"+w.String()), w.args...); err != nil {
		return 0, postgres.TranslateError(err, "Rental")
	}
	return count, nil
}

func (r *rentalRepository) Update(ctx context.Context, rent *rental.Rental) error {
	query := `
		UPDATE rentals SET
			person_id = :person_id,
			spot_id = :spot_id,
			start_date = :start_date,
			end_date = :end_date,
			total_days = :total_days,
			total_amount = :total_amount,
			payment_status = :payment_status,
			payment_method = :payment_method,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating rental", "rental_id", rent.ID)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rent)
	if err != nil {
		return postgres.TranslateError(err, "Rental")
	}
	return expectOneRow(result, "Rental", rent.ID)
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting rental", "rental_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, "DELETE FROM rentals WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err, "Rental")
	}
	return expectOneRow(result, "Rental", id)
}

// DATE columns come back at midnight in the session zone
func normalizeRentalDates(rent *rental.Rental) {
	rent.StartDate = types.DateOnly(rent.StartDate)
	if rent.EndDate != nil {
		end := types.DateOnly(*rent.EndDate)
		rent.EndDate = &end
	}
}
