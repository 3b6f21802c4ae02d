package internal

import (
	"fmt"
	"os"

	"github.com/flexprice/rvpark/internal/api/dto"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
)

// CreateAdminUser bootstraps the first administrator. Registration over the
// API needs an administrator already, so a fresh install starts here.
func CreateAdminUser() error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}
	name := lo.Ternary(os.Getenv("ADMIN_NAME") != "", os.Getenv("ADMIN_NAME"), username)

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	req := dto.RegisterRequest{
		Username: username,
		Password: password,
		Role:     types.UserRoleAdmin,
		Person: dto.CreatePersonRequest{
			Name:  name,
			Email: os.Getenv("ADMIN_EMAIL"),
		},
	}
	if parkID := os.Getenv("RV_PARK_ID"); parkID != "" {
		req.RvParkID = lo.ToPtr(parkID)
	}

	u, err := env.auth.Register(systemContext(), req)
	if ierr.IsAlreadyExists(err) {
		env.log.Infow("user already exists", "username", username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	env.log.Infow("created admin user", "id", u.ID, "username", u.Username)
	return nil
}
