package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fooddelivery/cmd"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/adapters/out/rediscache"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	app := &cli.App{
		Name:  "fooddelivery",
		Usage: "order fulfillment services",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the services listed in SERVICES",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func migrate(_ *cli.Context) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	return postgres.Migrate(configs.DatabaseURL())
}

func serve(c *cli.Context) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(configs)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = postgres.Migrate(configs.DatabaseURL()); err != nil {
		return err
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DatabaseURL()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	conn, err := amqp.Dial(configs.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	publisher, closePublisher, err := newPublisher(conn, configs, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})
	defer func() {
		_ = redisClient.Close()
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		publisher,
		rediscache.NewLocationCache(redisClient, configs.LocationTTL),
		logger,
	)

	consumers, err := app.CreateConsumers(conn)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	server := app.CreateServer(registry)

	logger.InfoContext(ctx, "Starting services", "services", configs.Services, "port", configs.HTTPPort)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(":" + configs.HTTPPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	for _, cons := range consumers {
		g.Go(func() error {
			return cons.Run(gctx)
		})
	}

	err = g.Wait()
	logger.InfoContext(context.WithoutCancel(ctx), "Services stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newPublisher wraps the RabbitMQ publisher with the Kafka audit stream when brokers are
// configured.
func newPublisher(conn *amqp.Connection, configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	bus, err := rabbitmq.NewPublisher(conn)
	if err != nil {
		return nil, nil, fmt.Errorf("open publisher channel: %w", err)
	}

	if len(configs.KafkaBrokers) == 0 {
		return bus, func() { _ = bus.Close() }, nil
	}

	producer, err := kafka.NewSyncProducer(configs.KafkaBrokers)
	if err != nil {
		_ = bus.Close()
		return nil, nil, fmt.Errorf("connect to kafka: %w", err)
	}

	closeAll := func() {
		_ = producer.Close()
		_ = bus.Close()
	}
	return kafka.NewAuditingPublisher(bus, producer, configs.KafkaAuditTopic, logger), closeAll, nil
}

func newLogger(configs cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(configs.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(configs.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
