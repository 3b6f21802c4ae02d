package internal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/flexprice/rvpark/internal/audit"
	"github.com/flexprice/rvpark/internal/auth"
	"github.com/flexprice/rvpark/internal/cache"
	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/domain/proration"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/repository"
	"github.com/flexprice/rvpark/internal/sentry"
	"github.com/flexprice/rvpark/internal/service"
	"github.com/flexprice/rvpark/internal/types"
)

// scriptEnv bundles the services a one-off script runs against. Audit
// entries are written synchronously since there is no consumer running.
type scriptEnv struct {
	cfg *config.Configuration
	log *logger.Logger
	db  *postgres.DB

	auth   service.AuthService
	rvPark service.RvParkService
	spot   service.SpotService
}

func newScriptEnv() (*scriptEnv, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	auditRepo := repository.NewAuditRepository(db, log)
	params := service.NewServiceParams(
		log,
		cfg,
		postgres.NewSentryClient(db, sentry.NewSentryService(cfg, log), log),
		repository.NewRvParkRepository(db, log),
		repository.NewSpotRepository(db, log),
		repository.NewPersonRepository(db, log),
		repository.NewRentalRepository(db, log),
		repository.NewPaymentRepository(db, log),
		repository.NewUserRepository(db, log),
		auditRepo,
		proration.NewCalculatorFromConfig(cfg),
		audit.NewDirectRecorder(auditRepo, log),
		auth.NewProvider(cfg),
	)

	return &scriptEnv{
		cfg:    cfg,
		log:    log,
		db:     db,
		auth:   service.NewAuthService(params, cache.NewInMemoryCache(cfg)),
		rvPark: service.NewRvParkService(params),
		spot:   service.NewSpotService(params),
	}, nil
}

// systemContext acts as an administrator with the reserved system user id
func systemContext() context.Context {
	ctx := types.SetUserID(context.Background(), types.DefaultUserID)
	return types.SetRole(ctx, types.UserRoleAdmin)
}

// GenerateAuthSecret prints a random 256-bit secret for signing tokens
func GenerateAuthSecret() error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("unable to generate secret: %w", err)
	}

	secret := hex.EncodeToString(key)
	fmt.Printf("Generated secret (hex): %s\n", secret)
	fmt.Printf("\nSet this environment variable:\n")
	fmt.Printf("RVPARK_AUTH_SECRET=%s\n", secret)
	return nil
}
