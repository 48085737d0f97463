package model

// JobStatus represents the lifecycle state of a download, extraction or
// format listing job.
type JobStatus string

const (
	// JobStatusIdle means no job is running
	JobStatusIdle JobStatus = "Idle"

	// JobStatusRunning means the worker is walking its attempt plan
	JobStatusRunning JobStatus = "Running"

	// JobStatusSucceeded means one attempt completed successfully
	JobStatusSucceeded JobStatus = "Succeeded"

	// JobStatusFailed means every attempt failed or the worker hit an unexpected error
	JobStatusFailed JobStatus = "Failed"

	// JobStatusCancelled means the user cancelled the job
	JobStatusCancelled JobStatus = "Cancelled"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if a worker currently owns the job
func (js JobStatus) IsActive() bool {
	return js == JobStatusRunning
}

// IsFinished returns true if the job reached a terminal state (succeeded, failed, or cancelled)
func (js JobStatus) IsFinished() bool {
	return js == JobStatusSucceeded || js == JobStatusFailed || js == JobStatusCancelled
}
