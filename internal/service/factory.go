package service

import (
	auditrecorder "github.com/flexprice/rvpark/internal/audit"
	"github.com/flexprice/rvpark/internal/auth"
	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/domain/payment"
	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/domain/proration"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/domain/user"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	RvParkRepo   rvpark.Repository
	SpotRepo     spot.Repository
	PersonRepo   person.Repository
	RentalRepo   rental.Repository
	PaymentRepo  payment.Repository
	UserRepo     user.Repository
	AuditLogRepo audit.Repository

	Calculator    proration.Calculator
	AuditRecorder auditrecorder.Recorder
	AuthProvider  auth.Provider
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	rvParkRepo rvpark.Repository,
	spotRepo spot.Repository,
	personRepo person.Repository,
	rentalRepo rental.Repository,
	paymentRepo payment.Repository,
	userRepo user.Repository,
	auditLogRepo audit.Repository,
	calculator proration.Calculator,
	auditRecorder auditrecorder.Recorder,
	authProvider auth.Provider,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		DB:            db,
		RvParkRepo:    rvParkRepo,
		SpotRepo:      spotRepo,
		PersonRepo:    personRepo,
		RentalRepo:    rentalRepo,
		PaymentRepo:   paymentRepo,
		UserRepo:      userRepo,
		AuditLogRepo:  auditLogRepo,
		Calculator:    calculator,
		AuditRecorder: auditRecorder,
		AuthProvider:  authProvider,
	}
}
