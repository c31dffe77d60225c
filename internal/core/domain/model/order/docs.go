// Package order implements the Order aggregate and the role-gated status machine
// that governs it.
//
// The package includes:
//   - Order: the aggregate root holding frozen line items, money fields, status,
//     shipper assignment, cancellation metadata and the paidOut settlement flag
//   - Status: the lifecycle PENDING, CONFIRMED, PREPARING, READY, SHIPPING, DELIVERED, CANCELLED
//   - the transition table: (current, next) -> roles allowed to trigger the edge
//   - LineItem: the product snapshot captured at checkout
//
// Key business rules:
//   - total == subtotal - discount + shipFee, never negative
//   - DELIVERED and CANCELLED are terminal
//   - only the shop owner confirms, prepares and readies an order
//   - exactly one shipper claims a READY order; only that shipper delivers it
//   - customer, owner and system may cancel before SHIPPING
//   - a delivered order is settled at most once
package order
