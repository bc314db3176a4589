package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite exercises transactions and row locks against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsIdempotent() {
	suite.Require().NoError(postgres_adapter.Migrate(suite.database.DSN))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx), "rollback after commit")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	a, err := delivery.NewAssignment(o.ID(), 5, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, a))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	exists, err := reader.AssignmentRepository().ExistsForOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsWrites() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Received, stored.Status())
}

// TestGetForUpdate_SerializesDriverClaims runs two claims for the same driver. The second
// transaction blocks on the row lock and, once it proceeds, sees the first reservation.
func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_SerializesDriverClaims() {
	ctx := suite.T().Context()

	p, err := driver.NewProfile(5, "Scooter", time.Now().UTC())
	suite.Require().NoError(err)
	p.SetAvailability(true, time.Now().UTC())
	suite.Require().NoError(suite.factory.Create().DriverRepository().Add(ctx, p))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.DriverRepository().GetForUpdate(ctx, 5)
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Claim(42, time.Now().UTC()))
	suite.Require().NoError(first.DriverRepository().Update(ctx, locked))

	secondResult := make(chan error, 1)
	go func() {
		second := suite.factory.Create()
		if beginErr := second.Begin(ctx); beginErr != nil {
			secondResult <- beginErr
			return
		}
		defer func() {
			_ = second.Rollback(ctx)
		}()

		profile, getErr := second.DriverRepository().GetForUpdate(ctx, 5)
		if getErr != nil {
			secondResult <- getErr
			return
		}
		secondResult <- profile.Claim(43, time.Now().UTC())
	}()

	select {
	case <-secondResult:
		suite.Fail("second claim must wait for the row lock")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(first.Commit(ctx))

	select {
	case err = <-secondResult:
		suite.Require().ErrorIs(err, errs.ErrInvalidState)
	case <-time.After(10 * time.Second):
		suite.Fail("second claim did not finish")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewLineItem(3, "Margherita", 2, decimal.RequireFromString("9.50"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(100, 7, []order.LineItem{item}, "Main St 1", time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
