package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var rvParkSortColumns = map[string]bool{
	"created_at": true,
	"name":       true,
}

type rvParkRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRvParkRepository(db *postgres.DB, logger *logger.Logger) rvpark.Repository {
	return &rvParkRepository{db: db, logger: logger}
}

func (r *rvParkRepository) Create(ctx context.Context, p *rvpark.RvPark) error {
	query := `
		INSERT INTO rv_parks (
			id, name, address, phone, email, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :address, :phone, :email, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating rv park", "rv_park_id", p.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	return postgres.TranslateError(err, "RV park")
}

func (r *rvParkRepository) Get(ctx context.Context, id string) (*rvpark.RvPark, error) {
	var p rvpark.RvPark
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, "SELECT * FROM rv_parks WHERE id = $1", id); err != nil {
		return nil, postgres.TranslateError(err, "RV park")
	}
	return &p, nil
}

func (r *rvParkRepository) where(filter *types.RvParkFilter) *whereClause {
	w := &whereClause{}
	if filter != nil && filter.Name != nil {
		w.add("name ILIKE ?", "%"+*filter.Name+"%")
	}
	return w
}

func (r *rvParkRepository) List(ctx context.Context, filter *types.RvParkFilter) ([]*rvpark.RvPark, error) {
	if filter == nil {
		filter = types.NewRvParkFilter()
	}
	w := r.where(filter)
	page, pageArgs := orderAndPage(filter.QueryFilter, rvParkSortColumns, "name")

	q := r.db.GetQuerier(ctx)
	parks := make([]*rvpark.RvPark, 0)
	err := q.SelectContext(ctx, &parks, q.Rebind("SELECT * FROM rv_parks"+w.String()+page), append(w.args, pageArgs...)...)
	if err != nil {
		return nil, postgres.TranslateError(err, "RV park")
	}
	return parks, nil
}

func (r *rvParkRepository) Count(ctx context.Context, filter *types.RvParkFilter) (int, error) {
	w := r.where(filter)
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM rv_parks"+w.String()), w.args...); err != nil {
		return 0, postgres.TranslateError(err, "RV park")
	}
	return count, nil
}

func (r *rvParkRepository) Update(ctx context.Context, p *rvpark.RvPark) error {
	query := `
		UPDATE rv_parks SET
			name = :name,
			address = :address,
			phone = :phone,
			email = :email,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return postgres.TranslateError(err, "RV park")
	}
	return expectOneRow(result, "RV park", p.ID)
}

func (r *rvParkRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, "DELETE FROM rv_parks WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err, "RV park")
	}
	return expectOneRow(result, "RV park", id)
}
