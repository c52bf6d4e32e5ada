// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch engine. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - ZoneResolver: point-in-polygon lookup over the active zones
//   - CandidateSelector: eligibility filtering and distance ranking of couriers
//   - StatusSynchronizer: mapping assignment transitions onto order status
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
