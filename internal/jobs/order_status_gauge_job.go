package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultGaugeSchedule refreshes the order gauges twice a minute.
const DefaultGaugeSchedule = "@every 30s"

type statusTotalsReader interface {
	Handle(ctx context.Context) ([]queries.RegionStatusTotal, error)
}

type statusGauges interface {
	SetOrdersByStatus(counts []metrics.StatusCount)
}

// OrderStatusGaugeJob periodically publishes the number of orders per region
// and status as Prometheus gauges.
type OrderStatusGaugeJob struct {
	totals   statusTotalsReader
	gauges   statusGauges
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOrderStatusGaugeJob(
	totals statusTotalsReader,
	gauges statusGauges,
	schedule string,
	logger *slog.Logger,
) *OrderStatusGaugeJob {
	if schedule == "" {
		schedule = DefaultGaugeSchedule
	}
	return &OrderStatusGaugeJob{
		totals:   totals,
		gauges:   gauges,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "order_status_gauge_job"),
	}
}

// Start runs one refresh immediately and then follows the schedule.
func (j *OrderStatusGaugeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.Run(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order status gauge job started", "schedule", j.schedule)
	return nil
}

// Run refreshes the gauges once. A failed read keeps the previous values.
func (j *OrderStatusGaugeJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	totals, err := j.totals.Handle(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "order status gauge refresh failed", "error", err)
		return
	}

	counts := make([]metrics.StatusCount, 0, len(totals))
	for _, total := range totals {
		counts = append(counts, metrics.StatusCount{
			Region: total.RegionCode,
			Status: total.Status,
			Count:  total.Count,
		})
	}
	j.gauges.SetOrdersByStatus(counts)
}

// Stop waits for a running refresh to finish.
func (j *OrderStatusGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "order status gauge job stopped")
}
