package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fooddelivery/internal/adapters/out/postgres/driverrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *driverrepo.GormDriverRepository
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = driverrepo.NewGormDriverRepository(suite.database.DB)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) register(driverID int64, available bool) *driver.Profile {
	p, err := driver.NewProfile(driverID, "Scooter", time.Now().UTC())
	suite.Require().NoError(err)
	if available {
		p.SetAvailability(true, time.Now().UTC())
	}
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), p))
	return p
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_DuplicateDriver() {
	suite.register(5, false)

	p, err := driver.NewProfile(5, "Bicycle", time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Add(suite.T().Context(), p)

	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_LocationAndOffline() {
	ctx := suite.T().Context()
	p := suite.register(5, true)

	loc, err := kernel.NewLocation(52.52, 13.405)
	suite.Require().NoError(err)
	suite.Require().NoError(p.UpdateLocation(loc, time.Now().UTC()))
	p.SetAvailability(false, time.Now().UTC())
	suite.Require().NoError(suite.repository.Update(ctx, p))

	stored, err := suite.repository.Get(ctx, 5)
	suite.Require().NoError(err)
	suite.False(stored.IsAvailable())
	suite.Require().NotNil(stored.Location())
	suite.InDelta(52.52, stored.Location().Latitude(), 1e-9)
	suite.InDelta(13.405, stored.Location().Longitude(), 1e-9)
	suite.NotNil(stored.LastLocationAt())
	suite.Equal("Scooter", stored.VehicleDetails())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_OrderHeldByAnotherDriver() {
	ctx := suite.T().Context()
	first := suite.register(5, true)
	second := suite.register(6, true)

	suite.Require().NoError(first.Claim(42, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Claim(42, time.Now().UTC()))
	err := suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_Unknown() {
	_, err := suite.repository.GetForUpdate(suite.T().Context(), 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
