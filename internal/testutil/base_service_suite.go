package testutil

import (
	"context"
	"time"

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
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	RvParkRepo   rvpark.Repository
	SpotRepo     spot.Repository
	PersonRepo   person.Repository
	RentalRepo   rental.Repository
	PaymentRepo  payment.Repository
	UserRepo     user.Repository
	AuditLogRepo audit.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	stores     Stores
	db         *MockPostgresClient
	logger     *logger.Logger
	config     *config.Configuration
	calculator proration.Calculator
	recorder   *MockAuditRecorder
	now        time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Billing.MonthlyRate = decimal.NewFromInt(1200)
	cfg.Auth.Secret = "test-secret-for-unit-tests-only"
	cfg.Auth.TokenTTL = time.Hour

	s.config = cfg
	s.logger = logger.NewNoopLogger()
	s.calculator = proration.NewCalculatorFromConfig(cfg)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	rvParks := NewInMemoryRvParkStore()
	spots := NewInMemorySpotStore()
	persons := NewInMemoryPersonStore()
	rentals := NewInMemoryRentalStore()
	payments := NewInMemoryPaymentStore()
	users := NewInMemoryUserStore()
	auditLogs := NewInMemoryAuditLogStore()

	s.stores = Stores{
		RvParkRepo:   rvParks,
		SpotRepo:     spots,
		PersonRepo:   persons,
		RentalRepo:   rentals,
		PaymentRepo:  payments,
		UserRepo:     users,
		AuditLogRepo: auditLogs,
	}

	s.db = NewMockPostgresClient(s.logger, rvParks, spots, persons, rentals, payments, users, auditLogs)
	s.recorder = NewMockAuditRecorder()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.RvParkRepo.(*InMemoryRvParkStore).Clear()
	s.stores.SpotRepo.(*InMemorySpotStore).Clear()
	s.stores.PersonRepo.(*InMemoryPersonStore).Clear()
	s.stores.RentalRepo.(*InMemoryRentalStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.AuditLogRepo.(*InMemoryAuditLogStore).Clear()
	s.recorder.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetCalculator returns the proration calculator at the test monthly rate
func (s *BaseServiceTestSuite) GetCalculator() proration.Calculator {
	return s.calculator
}

// GetAuditRecorder returns the recorder collecting audit entries
func (s *BaseServiceTestSuite) GetAuditRecorder() *MockAuditRecorder {
	return s.recorder
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
