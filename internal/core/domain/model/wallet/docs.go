// Package wallet implements per-(user, type) wallets, their append-only ledger and
// the payout request state machine.
//
// Every balance change produces exactly one LedgerEntry whose signed amount moves
// the balance from BalanceBefore to BalanceAfter. totalEarned and totalWithdrawn are
// derived from entry kinds, so balance == totalEarned - totalWithdrawn == sum(amounts)
// after any sequence of credits and debits.
package wallet
