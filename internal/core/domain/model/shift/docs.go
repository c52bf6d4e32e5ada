// Package shift contains the Shift aggregate: a courier's bounded work
// session with a single idempotent close primitive shared by manual closure
// and the overdue-shift watchdog.
package shift
