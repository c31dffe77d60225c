package jobs

import "fmt"

// Schedules holds the cron expressions (with a leading seconds field) of every job.
type Schedules struct {
	Settlement  string
	LedgerAudit string
}

func DefaultSchedules() Schedules {
	return Schedules{
		Settlement:  "*/30 * * * * *",
		LedgerAudit: "0 */5 * * * *",
	}
}

// JobManager starts and stops all scheduled jobs together.
type JobManager struct {
	settlementJob  *SettlementJob
	ledgerAuditJob *LedgerAuditJob
	schedules      Schedules
}

func NewJobManager(settlementJob *SettlementJob, ledgerAuditJob *LedgerAuditJob, schedules Schedules) *JobManager {
	defaults := DefaultSchedules()
	if schedules.Settlement == "" {
		schedules.Settlement = defaults.Settlement
	}
	if schedules.LedgerAudit == "" {
		schedules.LedgerAudit = defaults.LedgerAudit
	}
	return &JobManager{
		settlementJob:  settlementJob,
		ledgerAuditJob: ledgerAuditJob,
		schedules:      schedules,
	}
}

// StartAll starts every job. If one fails to start, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.settlementJob.Start(jm.schedules.Settlement); err != nil {
		return fmt.Errorf("failed to start settlement job: %w", err)
	}

	if err := jm.ledgerAuditJob.Start(jm.schedules.LedgerAudit); err != nil {
		jm.settlementJob.Stop()
		return fmt.Errorf("failed to start ledger audit job: %w", err)
	}

	return nil
}

// StopAll stops every job and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.ledgerAuditJob.Stop()
	jm.settlementJob.Stop()
}
