package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/rvpark/internal/api"
	v1 "github.com/flexprice/rvpark/internal/api/v1"
	"github.com/flexprice/rvpark/internal/audit"
	"github.com/flexprice/rvpark/internal/auth"
	"github.com/flexprice/rvpark/internal/cache"
	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/domain/proration"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	"github.com/flexprice/rvpark/internal/pubsub"
	"github.com/flexprice/rvpark/internal/pubsub/memory"
	"github.com/flexprice/rvpark/internal/repository"
	"github.com/flexprice/rvpark/internal/sentry"
	"github.com/flexprice/rvpark/internal/service"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title RV Park API
// @version 1.0
// @description Spots, tenants, rentals and monthly payments of RV parks
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format **Bearer &lt;token&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			provideDB,
			postgres.NewSentryClient,

			// Repositories
			repository.NewRvParkRepository,
			repository.NewSpotRepository,
			repository.NewPersonRepository,
			repository.NewRentalRepository,
			repository.NewPaymentRepository,
			repository.NewUserRepository,
			repository.NewAuditRepository,

			// Billing
			proration.NewCalculatorFromConfig,

			// Auth
			auth.NewProvider,

			// Audit trail
			memory.NewPubSub,
			providePublisher,
			provideSubscriber,
			audit.NewPublishingRecorder,
			audit.NewConsumer,
		),
		sentry.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewAuditService,
			service.NewRvParkService,
			service.NewSpotService,
			service.NewPersonService,
			service.NewRentalService,
			service.NewPaymentService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDB(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*postgres.DB, error) {
	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Closing database connections")
			return db.Close()
		},
	})
	return db, nil
}

func providePublisher(ps pubsub.PubSub) pubsub.Publisher {
	return ps
}

func provideSubscriber(ps pubsub.PubSub) pubsub.Subscriber {
	return ps
}

func provideHandlers(
	db *postgres.DB,
	logger *logger.Logger,
	authService service.AuthService,
	auditService service.AuditService,
	rvParkService service.RvParkService,
	spotService service.SpotService,
	personService service.PersonService,
	rentalService service.RentalService,
	paymentService service.PaymentService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(db, logger),
		Auth:    v1.NewAuthHandler(authService, logger),
		RvPark:  v1.NewRvParkHandler(rvParkService, logger),
		Spot:    v1.NewSpotHandler(spotService, logger),
		Person:  v1.NewPersonHandler(personService, logger),
		Rental:  v1.NewRentalHandler(rentalService, logger),
		Payment: v1.NewPaymentHandler(paymentService, logger),
		Audit:   v1.NewAuditHandler(auditService, logger),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	consumer *audit.Consumer,
	ps pubsub.PubSub,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		// local runs apply the schema themselves, deployed ones use cmd/migrate
		runMigrations(lc, db, log)
		startAuditConsumer(lc, consumer, ps, log)
		startAPIServer(lc, r, cfg, log)
	case types.ModeAPI:
		startAuditConsumer(lc, consumer, ps, log)
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func runMigrations(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Applying database migrations...")
			return db.Migrate(ctx)
		},
	})
}

func startAuditConsumer(lc fx.Lifecycle, consumer *audit.Consumer, ps pubsub.PubSub, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting audit consumer...")
			return consumer.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping audit consumer...")
			consumer.Stop()
			return ps.Close()
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
