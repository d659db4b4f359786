package models

// CronSchedule is the schedule of an external job. Only kind=cron entries
// with a 5-field expression participate in calendar occurrence expansion.
type CronSchedule struct {
	Kind string `json:"kind"`
	Expr string `json:"expr"`
}

const (
	ScheduleKindCron  = "cron"
	ScheduleKindEvery = "every"
	ScheduleKindAt    = "at"
)

// CronJob describes one entry of the external scheduler's jobs.json. The file
// is not owned by this system; the descriptor is read-only here.
type CronJob struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Enabled  bool         `json:"enabled"`
	Schedule CronSchedule `json:"schedule"`
	LastRun  *string      `json:"lastRun,omitempty"`
	NextRun  *string      `json:"nextRun,omitempty"`
}
