// Package address contains the Address aggregate: geocoded coordinates
// attached to an owning entity through a tagged reference, with a
// denormalized cache of the most recent zone resolution. The cache is
// rewritten atomically with the coordinates to prevent mismatched state.
package address
