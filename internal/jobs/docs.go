// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// OrderStatusGaugeJob reads the per-region order totals and republishes them
// as the fulfillment_orders_by_status gauge. Its schedule comes from the jobs
// section of the configuration and defaults to DefaultGaugeSchedule.
//
// JobManager owns the lifecycle:
//
//	manager := jobs.NewJobManager(gaugeJob)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A refresh that fails is logged and the gauges keep their last values.
package jobs
