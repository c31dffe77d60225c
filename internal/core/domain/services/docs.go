// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - CheckoutPricer: turns cart snapshots into frozen order line items priced from
//     the authoritative product records, reserving stock as it goes
package services
