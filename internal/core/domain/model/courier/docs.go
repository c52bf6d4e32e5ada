// Package courier contains the Courier aggregate: identity, presence and
// the last reported location used for distance ranking, plus projections of
// shift state and live assignment count that make dispatch eligibility a
// pure in-memory check.
package courier
