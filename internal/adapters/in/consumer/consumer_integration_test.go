package consumer_test

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"fooddelivery/internal/adapters/in/consumer"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
)

type ConsumerIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	conn      *amqp.Connection
}

func (suite *ConsumerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor: wait.ForLog("Server startup complete").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.PortEndpoint(ctx, "5672/tcp", "amqp")
	suite.Require().NoError(err)

	suite.conn, err = amqp.Dial(endpoint)
	suite.Require().NoError(err)
}

func (suite *ConsumerIntegrationTestSuite) TearDownSuite() {
	if suite.conn != nil {
		_ = suite.conn.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ConsumerIntegrationTestSuite) TestPublishedEventReachesHandler() {
	received := make(chan events.Event, 1)
	c := consumer.NewConsumer(suite.conn, "order-service.events", 2, map[string]consumer.HandlerFunc{
		events.TypeDriverAssigned: func(_ context.Context, event events.Event) (commands.Outcome, error) {
			received <- event
			return commands.OutcomeApplied, nil
		},
	}, discardLogger())

	ch, err := suite.conn.Channel()
	suite.Require().NoError(err)
	suite.Require().NoError(rabbitmq.DeclareQueue(ch, "order-service.events", c.RoutingKeys()))
	suite.Require().NoError(ch.Close())

	ctx, cancel := context.WithCancel(suite.T().Context())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	publisher, err := rabbitmq.NewPublisher(suite.conn)
	suite.Require().NoError(err)
	defer func() {
		_ = publisher.Close()
	}()

	// Not bound, must never reach the consumer.
	suite.Require().NoError(publisher.Publish(suite.T().Context(), events.OrderReadyForPickup{OrderID: 41, RestaurantID: 7}))
	suite.Require().NoError(publisher.Publish(suite.T().Context(), events.DriverAssigned{OrderID: 42, DriverID: 5}))

	select {
	case event := <-received:
		suite.Equal(events.DriverAssigned{OrderID: 42, DriverID: 5}, event)
	case <-time.After(10 * time.Second):
		suite.Fail("event was not consumed")
	}

	cancel()
	select {
	case err = <-done:
		suite.Require().NoError(err)
	case <-time.After(10 * time.Second):
		suite.Fail("consumer did not stop")
	}
}

func TestConsumerIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ConsumerIntegrationTestSuite))
}
