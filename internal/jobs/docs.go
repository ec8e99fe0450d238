// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. OrderExpiryJob - Cancels paid, unclaimed orders whose claim window has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireOrdersHandler, "@every 5m", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job's schedule comes from configuration and defaults to
// "@every 5m". Each tick sweeps in a single pass; a claim window shorter
// than the tick interval only delays cancellation, never correctness,
// because accepts check the deadline themselves.
//
// # Error Handling
//
// The expiry sweep logs per-row failures inside the handler and keeps going;
// only a failure to read the expired set surfaces here. Failed job starts
// will stop any already running jobs.
package jobs
