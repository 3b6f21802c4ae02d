package repository

import (
	"github.com/flexprice/rvpark/internal/domain/audit"
	"github.com/flexprice/rvpark/internal/domain/payment"
	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/domain/user"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/postgres"
	postgresRepo "github.com/flexprice/rvpark/internal/repository/postgres"
)

func NewRvParkRepository(db *postgres.DB, logger *logger.Logger) rvpark.Repository {
	return postgresRepo.NewRvParkRepository(db, logger)
}

func NewSpotRepository(db *postgres.DB, logger *logger.Logger) spot.Repository {
	return postgresRepo.NewSpotRepository(db, logger)
}

func NewPersonRepository(db *postgres.DB, logger *logger.Logger) person.Repository {
	return postgresRepo.NewPersonRepository(db, logger)
}

func NewRentalRepository(db *postgres.DB, logger *logger.Logger) rental.Repository {
	return postgresRepo.NewRentalRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuditRepository(db *postgres.DB, logger *logger.Logger) audit.Repository {
	return postgresRepo.NewAuditRepository(db, logger)
}
