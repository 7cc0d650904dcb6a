package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

var (
	ErrEmptyFileID = errors.New("empty file id")
	ErrQueueFull   = errors.New("queue is full")
)

// Queue feeds file ids to the Tracker.
type Queue struct {
	log     *slog.Logger
	fileIDs chan<- domain.ID
}

func NewQueue(log *slog.Logger, fileIDs chan<- domain.ID) *Queue {
	return &Queue{
		log:     log,
		fileIDs: fileIDs,
	}
}

// Enqueue submits a file without waiting for room in the queue.
func (q *Queue) Enqueue(ctx context.Context, fileID domain.ID) error {
	if fileID == "" {
		return ErrEmptyFileID
	}

	select {
	case q.fileIDs <- fileID:
		q.log.DebugContext(ctx, "file enqueued", slog.String("file_id", fileID.String()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Resume re-submits every file whose last recorded job was still in flight.
func (q *Queue) Resume(ctx context.Context, jobs ActiveJobsProvider) error {
	active, err := jobs.ActiveJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active jobs: %w", err)
	}

	q.log.InfoContext(ctx, "resuming active jobs", slog.Int("count", len(active)))

	for _, job := range active {
		select {
		case q.fileIDs <- job.FileID:
			q.log.DebugContext(ctx, "resumed file",
				slog.String("file_id", job.FileID.String()),
				slog.String("job_id", job.JobID.String()),
				slog.String("status", string(job.Status)),
			)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
