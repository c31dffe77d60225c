// Package jobs runs periodic background tasks with github.com/robfig/cron/v3.
//
// Jobs live outside the core and only re-trigger idempotent application operations:
//
//   - SettlementJob re-runs SettleDeliveredOrder for DELIVERED orders that are not paid out.
//   - LedgerAuditJob logs wallets whose cached balance differs from their ledger sum.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(settlementJob, ledgerAuditJob, jobs.Schedules{
//		Settlement:  cfg.SettlementJobSchedule,
//		LedgerAudit: cfg.LedgerAuditSchedule,
//	})
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. A pass that is still
// running when its next tick arrives causes that tick to be skipped.
//
// # Error Handling
//
//   - A single order that fails to settle is logged and retried on the next pass.
//   - Failed job starts stop any already running jobs.
package jobs
