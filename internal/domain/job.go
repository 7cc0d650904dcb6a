package domain

import "time"

// ProcessingJob is one backend attempt to analyze one uploaded file.
// Every observed change arrives as a new snapshot; values are never mutated.
type ProcessingJob struct {
	ID           ID         `json:"id"`
	FileID       ID         `json:"file"`
	FileName     string     `json:"file_name,omitempty"`
	Status       JobStatus  `json:"status"`
	StartedAt    *Timestamp `json:"started_at"`
	CompletedAt  *Timestamp `json:"completed_at"`
	ErrorMessage *string    `json:"error_message"`
}

// Failure returns the backend's error message for a failed job.
func (j *ProcessingJob) Failure() string {
	if j.ErrorMessage == nil {
		return ""
	}

	return *j.ErrorMessage
}

// TrackedJob is the locally stored view of the latest job snapshot per file.
type TrackedJob struct {
	FileID       ID         `db:"file_id"       json:"file_id"`
	JobID        ID         `db:"job_id"        json:"job_id"`
	Status       JobStatus  `db:"status"        json:"status"`
	ErrorMessage string     `db:"error_message" json:"error_message,omitempty"`
	StartedAt    *time.Time `db:"started_at"    json:"started_at,omitempty"`
	CompletedAt  *time.Time `db:"completed_at"  json:"completed_at,omitempty"`
	UpdatedAt    time.Time  `db:"updated_at"    json:"updated_at"`
}

func NewTrackedJob(fileID ID, job *ProcessingJob) *TrackedJob {
	tracked := &TrackedJob{
		FileID:       fileID,
		JobID:        job.ID,
		Status:       job.Status,
		ErrorMessage: job.Failure(),
		UpdatedAt:    time.Now(),
	}

	if job.StartedAt != nil && !job.StartedAt.IsZero() {
		t := job.StartedAt.Time
		tracked.StartedAt = &t
	}

	if job.CompletedAt != nil && !job.CompletedAt.IsZero() {
		t := job.CompletedAt.Time
		tracked.CompletedAt = &t
	}

	return tracked
}
