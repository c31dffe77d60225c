package jobs

import (
	"context"
	"fmt"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type LedgerDriftFinder interface {
	Handle(ctx context.Context, query queries.FindLedgerDriftQuery) ([]queries.LedgerDrift, error)
}

// LedgerAuditJob reports wallets whose cached balance differs from the sum of their
// ledger entries. It never corrects anything.
type LedgerAuditJob struct {
	finder LedgerDriftFinder
	cron   *cron.Cron
	logger *zap.Logger
}

func NewLedgerAuditJob(finder LedgerDriftFinder, logger *zap.Logger) *LedgerAuditJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerAuditJob{
		finder: finder,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With(zap.String("component", "ledger_audit_job")),
	}
}

// Run logs every drifting wallet and returns them.
func (j *LedgerAuditJob) Run(ctx context.Context) ([]queries.LedgerDrift, error) {
	drifts, err := j.finder.Handle(ctx, queries.NewFindLedgerDriftQuery())
	if err != nil {
		return nil, fmt.Errorf("find ledger drift: %w", err)
	}
	for _, d := range drifts {
		j.logger.Error("wallet balance does not match ledger",
			zap.Stringer("wallet_id", d.WalletID),
			zap.Stringer("user_id", d.UserID),
			zap.String("wallet_type", string(d.Type)),
			zap.Int64("balance", d.Balance),
			zap.Int64("ledger_sum", d.LedgerSum),
			zap.Int64("drift", d.Balance-d.LedgerSum),
		)
	}
	return drifts, nil
}

func (j *LedgerAuditJob) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("ledger audit job failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("ledger audit job started", zap.String("schedule", schedule))
	return nil
}

func (j *LedgerAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("ledger audit job stopped")
}
