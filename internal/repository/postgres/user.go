package postgres

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/user"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, role, rv_park_id, person_id, active,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :username, :password_hash, :role, :rv_park_id, :person_id, :active,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating user", "user_id", u.ID, "role", u.Role)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u)
	return postgres.TranslateError(err, "User")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, "SELECT * FROM users WHERE id = $1", id); err != nil {
		return nil, postgres.TranslateError(err, "User")
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, "SELECT * FROM users WHERE username = $1", username); err != nil {
		return nil, postgres.TranslateError(err, "User")
	}
	return &u, nil
}
