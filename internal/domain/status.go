package domain

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// InFlight reports whether the backend is still working on the job.
func (s JobStatus) InFlight() bool {
	return s == StatusPending || s == StatusProcessing
}

func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
