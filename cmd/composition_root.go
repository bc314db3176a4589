package cmd

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"fooddelivery/internal/adapters/in/consumer"
	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/httpclient"
	"fooddelivery/internal/adapters/out/inprocess"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"
)

// Queues owned by the consuming services.
const (
	OrderServiceQueue    = "order-service.events"
	DeliveryServiceQueue = "delivery-service.events"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	cache      ports.LocationCache
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	cache ports.LocationCache,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		cache:      cache,
		logger:     logger,
	}
}

// Order service

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	catalog := httpclient.NewMenuCatalog(c.cfg.RestaurantServiceURL, c.cfg.HTTPClientTimeout)
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), catalog)
}

func (c *CompositionRoot) CreateApplyPaymentOutcomeCommandHandler() commands.ApplyPaymentOutcomeCommandHandler {
	return commands.NewApplyPaymentOutcomeCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.gormDB)
}

// Payment service

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.paymentUoWFactory(), c.publisher)
}

// Delivery service

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(
		c.assignmentUoWFactory(),
		c.driverDirectory(),
		services.NewDriverDispatcher(),
		c.publisher,
	)
}

func (c *CompositionRoot) CreateTrackDriverLocationCommandHandler() commands.TrackDriverLocationCommandHandler {
	return commands.NewTrackDriverLocationCommandHandler(c.assignmentUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(
		c.assignmentUoWFactory(),
		c.publisher,
		c.cache,
		c.driverDirectory(),
	)
}

func (c *CompositionRoot) CreateGetTrackedLocationQueryHandler() queries.GetTrackedLocationQueryHandler {
	return queries.NewGetTrackedLocationQueryHandler(c.cache)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.gormDB)
}

// driverDirectory calls the driver service's use cases directly when it runs in this
// process and its HTTP API otherwise.
func (c *CompositionRoot) driverDirectory() ports.DriverDirectory {
	if c.cfg.Runs(ServiceDriver) {
		return inprocess.NewDriverDirectory(
			c.CreateListAvailableDriversQueryHandler(),
			c.CreateClaimDriverCommandHandler(),
		)
	}
	return httpclient.NewDriverDirectory(c.cfg.DriverServiceURL, c.cfg.HTTPClientTimeout)
}

// Driver service

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	return commands.NewUpdateDriverLocationCommandHandler(c.driverUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateClaimDriverCommandHandler() commands.ClaimDriverCommandHandler {
	return commands.NewClaimDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateListAvailableDriversQueryHandler() queries.ListAvailableDriversQueryHandler {
	return queries.NewListAvailableDriversQueryHandler(c.gormDB)
}

// Inbound adapters

// CreateServer registers the routes of every service this process runs.
func (c *CompositionRoot) CreateServer(gatherer prometheus.Gatherer) *httpin.Server {
	server := httpin.NewServer(gatherer, c.logger)
	server.SetStreamInterval(c.cfg.StreamInterval)

	if c.cfg.Runs(ServiceOrder) {
		server.RegisterOrderRoutes(httpin.OrderHandlers{
			Create:     c.CreateCreateOrderCommandHandler(),
			Get:        c.CreateGetOrderQueryHandler(),
			ListByUser: c.CreateListUserOrdersQueryHandler(),
		})
	}
	if c.cfg.Runs(ServicePayment) {
		server.RegisterPaymentRoutes(httpin.PaymentHandlers{
			Initiate: c.CreateInitiatePaymentCommandHandler(),
			Confirm:  c.CreateConfirmPaymentCommandHandler(),
		})
	}
	if c.cfg.Runs(ServiceDelivery) {
		server.RegisterDeliveryRoutes(httpin.DeliveryHandlers{
			UpdateStatus:    c.CreateUpdateDeliveryStatusCommandHandler(),
			TrackedLocation: c.CreateGetTrackedLocationQueryHandler(),
		})
	}
	if c.cfg.Runs(ServiceDriver) {
		server.RegisterDriverRoutes(httpin.DriverHandlers{
			Register:        c.CreateRegisterDriverCommandHandler(),
			ListAvailable:   c.CreateListAvailableDriversQueryHandler(),
			SetAvailability: c.CreateSetDriverAvailabilityCommandHandler(),
			UpdateLocation:  c.CreateUpdateDriverLocationCommandHandler(),
			Claim:           c.CreateClaimDriverCommandHandler(),
		})
	}

	return server
}

// CreateConsumers declares the queues of the consuming services this process runs and
// returns one consumer per queue.
func (c *CompositionRoot) CreateConsumers(conn *amqp.Connection) ([]*consumer.Consumer, error) {
	var consumers []*consumer.Consumer

	if c.cfg.Runs(ServiceOrder) {
		consumers = append(consumers, consumer.NewConsumer(
			conn,
			OrderServiceQueue,
			c.cfg.ConsumerWorkers,
			consumer.OrderSagaRoutes(
				c.CreateApplyPaymentOutcomeCommandHandler(),
				c.CreateAdvanceOrderStatusCommandHandler(),
			),
			c.logger,
		))
	}
	if c.cfg.Runs(ServiceDelivery) {
		consumers = append(consumers, consumer.NewConsumer(
			conn,
			DeliveryServiceQueue,
			c.cfg.ConsumerWorkers,
			consumer.DeliveryRoutes(
				c.CreateAssignDriverCommandHandler(),
				c.CreateTrackDriverLocationCommandHandler(),
			),
			c.logger,
		))
	}

	if len(consumers) == 0 {
		return nil, nil
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = ch.Close()
	}()

	for _, cons := range consumers {
		if err = rabbitmq.DeclareQueue(ch, cons.Queue(), cons.RoutingKeys()); err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", cons.Queue(), err)
		}
	}

	return consumers, nil
}

// CreateJobManager returns the scheduled jobs. Only the delivery service has any.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.cfg.Runs(ServiceDelivery) {
		return &jobs.JobManager{}
	}
	return jobs.NewJobManager(c.CreateGetDeliveryStatsQueryHandler(), c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}
