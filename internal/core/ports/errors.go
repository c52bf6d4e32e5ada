package ports

import "errors"

// ErrConcurrentUpdate is returned by compare-and-set repository updates
// when another writer changed the row between read and write. First writer
// wins; the loser re-reads or drops its attempt.
var ErrConcurrentUpdate = errors.New("aggregate was updated concurrently")
