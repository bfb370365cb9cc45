// Package jobs provides scheduled background tasks for labflow.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds-enabled specs.
//
// # Available Jobs
//
// 1. ExpiredOrdersReportJob - logs a warning with the number of active, unfinished
// orders whose expiresAt has passed. It never changes order state.
//
// # Usage
//
//	report := jobs.NewExpiredOrdersReportJob(countHandler, "0 */5 * * * *", nil, logger)
//	jobManager := jobs.NewJobManager(logger, report)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Query failures are logged at error level and retried on the next tick
// - Failed job starts stop any already running jobs
package jobs
