// Package jobs provides the scheduled background tasks of the dispatch
// engine, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. OfferExpiryJob - runs every second, expires lapsed offers and triggers
//     reassignment
//  2. DispatchSweepJob - periodically offers undispatched backlog orders
//  3. OrderTimeoutJob - cancels orders stuck in pending past the timeout
//  4. ShiftWatchdogJob - force-closes shifts past their expected end time
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(
//		orderUoWFactory, dispatcher,
//		expireOffersHandler, cancelStaleOrdersHandler, closeOverdueShiftsHandler,
//		schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Every job treats its failures as per-pass: errors are logged and the next
// tick retries. Soft dispatch outcomes (lease held, no courier, attempts
// exhausted) are not errors and are filtered before logging. A failed job
// start stops any already running jobs.
package jobs
