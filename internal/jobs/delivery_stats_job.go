package jobs

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"fooddelivery/internal/core/application/usecases/queries"
)

// DeliveryStatsSchedule runs the stats job every 15 seconds.
const DeliveryStatsSchedule = "*/15 * * * * *"

type DeliveryStatsHandler interface {
	Handle(ctx context.Context, query queries.GetDeliveryStatsQuery) (queries.DeliveryStatsResponse, error)
}

// DeliveryStatsJob refreshes the driver and delivery gauges from the database.
type DeliveryStatsJob struct {
	handler          DeliveryStatsHandler
	availableDrivers prometheus.Gauge
	activeDeliveries prometheus.Gauge
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewDeliveryStatsJob creates a job that writes the counts of GetDeliveryStatsQuery into
// the given gauges.
func NewDeliveryStatsJob(
	handler DeliveryStatsHandler,
	availableDrivers, activeDeliveries prometheus.Gauge,
	logger *slog.Logger,
) *DeliveryStatsJob {
	return &DeliveryStatsJob{
		handler:          handler,
		availableDrivers: availableDrivers,
		activeDeliveries: activeDeliveries,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger.With("component", "delivery_stats_job"),
	}
}

// Start schedules the job. The gauges are refreshed once right away.
func (j *DeliveryStatsJob) Start() error {
	_, err := j.cron.AddFunc(DeliveryStatsSchedule, func() {
		j.refresh(context.Background())
	})
	if err != nil {
		return err
	}

	j.refresh(context.Background())

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery stats job started", "schedule", DeliveryStatsSchedule)
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *DeliveryStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery stats job stopped")
}

// refresh keeps the previous gauge values when the query fails.
func (j *DeliveryStatsJob) refresh(ctx context.Context) {
	stats, err := j.handler.Handle(ctx, queries.NewGetDeliveryStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery stats job failed", "error", err)
		return
	}

	j.availableDrivers.Set(float64(stats.AvailableDrivers))
	j.activeDeliveries.Set(float64(stats.ActiveDeliveries))
}
