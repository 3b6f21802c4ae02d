package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var spotSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"status":     true,
}

type spotRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSpotRepository(db *postgres.DB, logger *logger.Logger) spot.Repository {
	return &spotRepository{db: db, logger: logger}
}

func (r *spotRepository) Create(ctx context.Context, s *spot.Spot) error {
	query := `
		INSERT INTO spots (
			id, rv_park_id, code, status, color, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :rv_park_id, :code, :status, :color, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating spot", "spot_id", s.ID, "rv_park_id", s.RvParkID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	return postgres.TranslateError(err, "Spot")
}

func (r *spotRepository) Get(ctx context.Context, id string) (*spot.Spot, error) {
	return r.get(ctx, "SELECT * FROM spots WHERE id = $1", id)
}

func (r *spotRepository) GetForUpdate(ctx context.Context, id string) (*spot.Spot, error) {
	return r.get(ctx, "SELECT * FROM spots WHERE id = $1 FOR UPDATE", id)
}

func (r *spotRepository) get(ctx context.Context, query, id string) (*spot.Spot, error) {
	var s spot.Spot
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &s, query, id); err != nil {
		return nil, postgres.TranslateError(err, "Spot")
	}
	return &s, nil
}

func (r *spotRepository) where(filter *types.SpotFilter) *whereClause {
	w := &whereClause{}
	if filter == nil {
		return w
	}
	if filter.RvParkID != nil {
		w.add("rv_park_id = ?", *filter.RvParkID)
	}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	return w
}

func (r *spotRepository) List(ctx context.Context, filter *types.SpotFilter) ([]*spot.Spot, error) {
	if filter == nil {
		filter = types.NewNoLimitSpotFilter()
	}
	w := r.where(filter)
	page, pageArgs := orderAndPage(filter.QueryFilter, spotSortColumns, "code")

	q := r.db.GetQuerier(ctx)
	spots := make([]*spot.Spot, 0)
	err := q.SelectContext(ctx, &spots, q.Rebind("SELECT * FROM spots"+w.String()+page), append(w.args, pageArgs...)...)
	if err != nil {
		return nil, postgres.TranslateError(err, "Spot")
	}
	return spots, nil
}

func (r *spotRepository) Count(ctx context.Context, filter *types.SpotFilter) (int, error) {
	w := r.where(filter)
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM spots"+w.String()), w.args...); err != nil {
		return 0, postgres.TranslateError(err, "Spot")
	}
	return count, nil
}

func (r *spotRepository) Update(ctx context.Context, s *spot.Spot) error {
	query := `
		UPDATE spots SET
			rv_park_id = :rv_park_id,
			code = :code,
			status = :status,
			color = :color,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating spot", "spot_id", s.ID, "status", s.Status)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		return postgres.TranslateError(err, "Spot")
	}
	return expectOneRow(result, "Spot", s.ID)
}

func (r *spotRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting spot", "spot_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, "DELETE FROM spots WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err, "Spot")
	}
	return expectOneRow(result, "Spot", id)
}
