// Package jobs provides scheduled background tasks around the dispatch engine.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are managed
// through JobManager:
//
//	manager := jobs.NewJobManager(redispatchJob, reconcileJob)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// 1. RedispatchJob - retries dispatch for the oldest PENDING shipments
// 2. OccupancyReconcileJob - re-derives AVAILABLE/ON_TRIP from active shipments
//
// Both are opt-in: the composition root only builds a job whose schedule is set.
//
// # Error Handling
//
// RedispatchJob logs NoCapacityAvailable and NoDriverAvailable at debug level
// and backs the shipment off exponentially (RedispatchBackoff), so newer
// shipments get the batch slots while it waits. Everything else is logged
// and counted as a failed run in JobMetrics.
package jobs
