package model

// MaxReportedErrors caps the attempt errors shown to the user.
const MaxReportedErrors = 6

// OutcomeStatus is the terminal result of walking an attempt plan.
type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeFailure
	OutcomeCancelled
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// JobOutcome is the result of one attempt plan. Errors holds every
// per-attempt message in attempt order.
type JobOutcome struct {
	Status OutcomeStatus
	Errors []string
}

// Recent returns the last n error messages.
func (o JobOutcome) Recent(n int) []string {
	if n <= 0 || len(o.Errors) == 0 {
		return nil
	}
	if len(o.Errors) <= n {
		return o.Errors
	}
	return o.Errors[len(o.Errors)-n:]
}

// JobStatus maps the outcome onto the job lifecycle.
func (o JobOutcome) JobStatus() JobStatus {
	switch o.Status {
	case OutcomeSuccess:
		return JobStatusSucceeded
	case OutcomeCancelled:
		return JobStatusCancelled
	default:
		return JobStatusFailed
	}
}
