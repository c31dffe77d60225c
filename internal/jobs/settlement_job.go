package jobs

import (
	"context"
	"fmt"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SettlementBatchSize bounds how many orders one run settles.
const SettlementBatchSize = 100

type UnsettledOrdersLister interface {
	Handle(ctx context.Context, query queries.ListUnsettledDeliveredOrdersQuery) ([]kernel.UUID, error)
}

type OrderSettler interface {
	Handle(ctx context.Context, command commands.SettleDeliveredOrderCommand) (bool, error)
}

// SettlementJob pays out DELIVERED orders whose settlement did not commit with the
// delivery, e.g. after a crash between the two. Settling is idempotent, so a run that
// overlaps a live delivery only finds the order already paid out.
type SettlementJob struct {
	lister  UnsettledOrdersLister
	settler OrderSettler
	cron    *cron.Cron
	logger  *zap.Logger
}

func NewSettlementJob(lister UnsettledOrdersLister, settler OrderSettler, logger *zap.Logger) *SettlementJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettlementJob{
		lister:  lister,
		settler: settler,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With(zap.String("component", "settlement_job")),
	}
}

// Run settles one batch and returns how many orders it paid out.
// A failing order is logged and skipped; the next run picks it up again.
func (j *SettlementJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewListUnsettledDeliveredOrdersQuery(SettlementBatchSize)
	if err != nil {
		return 0, err
	}
	orderIDs, err := j.lister.Handle(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("list unsettled orders: %w", err)
	}

	settled := 0
	for _, orderID := range orderIDs {
		if ctx.Err() != nil {
			return settled, ctx.Err()
		}
		cmd, err := commands.NewSettleDeliveredOrderCommand(orderID)
		if err != nil {
			return settled, err
		}
		ok, err := j.settler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("settle order failed", zap.Stringer("order_id", orderID), zap.Error(err))
			continue
		}
		if ok {
			settled++
		}
	}
	return settled, nil
}

// Start schedules Run; schedule is a six-field cron expression.
func (j *SettlementJob) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		ctx := context.Background()
		settled, err := j.Run(ctx)
		if err != nil {
			j.logger.Error("settlement job failed", zap.Error(err))
			return
		}
		if settled > 0 {
			j.logger.Info("settled delivered orders", zap.Int("count", settled))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("settlement job started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running pass to finish.
func (j *SettlementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("settlement job stopped")
}
