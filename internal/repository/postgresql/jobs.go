package postgresql

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

const TableJobs = "jobs"

var jobColumns = []string{
	"file_id",
	"job_id",
	"status",
	"error_message",
	"started_at",
	"completed_at",
	"updated_at",
}

type JobsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewJobsRepository(pool *pgxpool.Pool) *JobsRepository {
	return &JobsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// RecordSnapshot stores the latest job snapshot of a file.
func (r *JobsRepository) RecordSnapshot(ctx context.Context, job *domain.TrackedJob) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableJobs).
		Columns(jobColumns...).
		Values(
			job.FileID,
			job.JobID,
			job.Status,
			job.ErrorMessage,
			job.StartedAt,
			job.CompletedAt,
			job.UpdatedAt,
		).
		Suffix(`ON CONFLICT (file_id) DO UPDATE SET
			job_id = EXCLUDED.job_id,
			status = EXCLUDED.status,
			error_message = EXCLUDED.error_message,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at
		`).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return executeQueryError(err)
	}

	return nil
}

// ActiveJobs returns files whose last recorded job has not reached a terminal state.
func (r *JobsRepository) ActiveJobs(ctx context.Context) ([]*domain.TrackedJob, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(jobColumns...).
		From(TableJobs).
		Where(sq.Eq{"status": []domain.JobStatus{domain.StatusPending, domain.StatusProcessing}}).
		OrderBy("updated_at ASC").
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	jobs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.TrackedJob])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return jobs, nil
}

func (r *JobsRepository) Job(ctx context.Context, fileID domain.ID) (*domain.TrackedJob, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(jobColumns...).
		From(TableJobs).
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	job, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.TrackedJob])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return job, nil
}
