// Package services provides domain services that implement business rules
// spanning multiple domain entities in the fulfillment system.
//
// The package includes:
//   - AccessPolicy: A domain service deciding which actor may perform which
//     lifecycle operation on a delivery
//
// Domain services coordinate between aggregates, implementing business logic
// that doesn't naturally belong to a single aggregate root.
package services
