package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/types"
)

var personSortColumns = map[string]bool{
	"created_at": true,
	"name":       true,
}

type personRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPersonRepository(db *postgres.DB, logger *logger.Logger) person.Repository {
	return &personRepository{db: db, logger: logger}
}

func (r *personRepository) Create(ctx context.Context, p *person.Person) error {
	query := `
		INSERT INTO persons (
			id, name, phone, email, vehicle_type, address, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :phone, :email, :vehicle_type, :address, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating person", "person_id", p.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	return postgres.TranslateError(err, "Person")
}

func (r *personRepository) Get(ctx context.Context, id string) (*person.Person, error) {
	var p person.Person
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, "SELECT * FROM persons WHERE id = $1", id); err != nil {
		return nil, postgres.TranslateError(err, "Person")
	}
	return &p, nil
}

func (r *personRepository) where(filter *types.PersonFilter) *whereClause {
	w := &whereClause{}
	if filter == nil {
		return w
	}
	if filter.Name != nil {
		w.add("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Email != nil {
		w.add("email = ?", *filter.Email)
	}
	return w
}

func (r *personRepository) List(ctx context.Context, filter *types.PersonFilter) ([]*person.Person, error) {
	if filter == nil {
		filter = types.NewPersonFilter()
	}
	w := r.where(filter)
	page, pageArgs := orderAndPage(filter.QueryFilter, personSortColumns, "name")

	q := r.db.GetQuerier(ctx)
	persons := make([]*person.Person, 0)
	err := q.SelectContext(ctx, &persons, q.Rebind("SELECT * FROM persons"+w.String()+page), append(w.args, pageArgs...)...)
	if err != nil {
		return nil, postgres.TranslateError(err, "Person")
	}
	return persons, nil
}

func (r *personRepository) Count(ctx context.Context, filter *types.PersonFilter) (int, error) {
	w := r.where(filter)
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM persons"+w.String()), w.args...); err != nil {
		return 0, postgres.TranslateError(err, "Person")
	}
	return count, nil
}

func (r *personRepository) Update(ctx context.Context, p *person.Person) error {
	query := `
		UPDATE persons SET
			name = :name,
			phone = :phone,
			email = :email,
			vehicle_type = :vehicle_type,
			address = :address,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return postgres.TranslateError(err, "Person")
	}
	return expectOneRow(result, "Person", p.ID)
}

func (r *personRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, "DELETE FROM persons WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err, "Person")
	}
	return expectOneRow(result, "Person", id)
}
