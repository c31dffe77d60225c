// Package cart implements the customer's shopping cart. A cart belongs to exactly one
// customer, is created on the first add and is cleared in the same transaction that
// creates an order from it. Item prices are display snapshots; checkout re-prices
// against the product records.
package cart
