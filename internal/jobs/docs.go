// Package jobs provides scheduled background tasks for the fulfillment services.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. DeliveryStatsJob - Runs every 15 seconds and sets the available-driver and
// active-delivery gauges from GetDeliveryStatsQuery
//
// # Usage
//
//	jobManager := jobs.NewJobManager(deliveryStatsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed refresh is logged and the gauges keep their previous values
// - Failed job starts will stop any already running jobs
package jobs
