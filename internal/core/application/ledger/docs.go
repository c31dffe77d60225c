// Package ledger holds the two balance-keeping services of the fulfillment engine.
//
// VoucherLedger applies voucher redemptions. The usage counter on the voucher and the
// usage rows are always written together and never removed, so currentUsage only grows
// and equals the number of usage rows for every voucher. A usage is keyed by (voucher, user, order),
// which makes applying the same voucher to the same order a replay, not a second use.
//
// WalletLedger credits and debits wallets. Every mutation appends one immutable ledger
// entry carrying the balance before and after, so the wallet balance is always the sum
// of its entries.
//
// Neither service opens a transaction. Both operate on repositories bound to the
// caller's unit of work and must run inside it:
//
//	uow := factory.Create()
//	_ = uow.Begin(ctx)
//	applied, err := voucherLedger.Apply(ctx, uow.VoucherRepository(), req)
//	...
//	_ = uow.Commit(ctx)
package ledger
