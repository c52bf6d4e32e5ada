// Package assignment contains the Assignment aggregate: a single offer of
// an order to a courier with an expiry deadline. Rows are superseded, never
// deleted; at most one assignment per order is live at any instant.
package assignment
