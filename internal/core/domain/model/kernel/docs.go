// Package kernel provides the shared domain primitives of the marketplace engine:
//   - UUID: identifier value object for every aggregate
//   - Money: non-negative amount in the smallest currency unit
//   - Address: delivery destination captured at checkout
//   - Actor and Role: the authenticated caller and the capacity it acts in
//   - DomainEvent and Clock: contracts aggregates use to record what happened and when
//
// Value objects are immutable and validated on construction; zero values fail Validate.
package kernel
