package service

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/auth"
	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/testutil"
	"github.com/flexprice/rvpark/internal/types"
)

// newTestServiceParams wires every service dependency to the suite's in-memory stores
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		stores.RvParkRepo,
		stores.SpotRepo,
		stores.PersonRepo,
		stores.RentalRepo,
		stores.PaymentRepo,
		stores.UserRepo,
		stores.AuditLogRepo,
		s.GetCalculator(),
		s.GetAuditRecorder(),
		auth.NewProvider(s.GetConfig()),
	)
}

type fixtures struct {
	park   *rvpark.RvPark
	spot   *spot.Spot
	person *person.Person
}

// seedFixtures stores one park with one available spot and one tenant
func seedFixtures(s *testutil.BaseServiceTestSuite) fixtures {
	ctx := s.GetContext()
	stores := s.GetStores()

	park := &rvpark.RvPark{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RV_PARK),
		Name:      "Desert Palms",
		Address:   "Km 12 Carretera Federal",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(stores.RvParkRepo.Create(ctx, park))

	sp := seedSpot(s, park.ID, "A-01")

	p := &person.Person{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PERSON),
		Name:        "Juan Pérez",
		Phone:       "555-0100",
		Email:       "juan@example.com",
		VehicleType: types.VehicleTypeCaravan,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(stores.PersonRepo.Create(ctx, p))

	return fixtures{park: park, spot: sp, person: p}
}

func seedSpot(s *testutil.BaseServiceTestSuite, parkID, code string) *spot.Spot {
	ctx := s.GetContext()
	sp := &spot.Spot{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SPOT),
		RvParkID:  parkID,
		Code:      code,
		Status:    types.SpotStatusAvailable,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.GetStores().SpotRepo.Create(ctx, sp))
	return sp
}

func spotStatus(ctx context.Context, s *testutil.BaseServiceTestSuite, id string) types.SpotStatus {
	sp, err := s.GetStores().SpotRepo.Get(ctx, id)
	s.Require().NoError(err)
	return sp.Status
}

func dateString(t time.Time) string {
	return types.FormatDate(t)
}

func today() time.Time {
	return types.DateOnly(time.Now().UTC())
}
