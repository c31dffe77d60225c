// Package voucher implements shop discount codes and their usage records.
//
// A Voucher carries a global usage limit and a per-user limit. Its currentUsage counter
// only grows, and only together with a Usage row keyed by (voucher, user, order), so the
// counter always equals the number of usage rows and a replayed apply for the same order
// cannot count twice.
package voucher
