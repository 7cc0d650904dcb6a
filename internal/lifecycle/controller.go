package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

const DefaultPollInterval = 3 * time.Second

// API is the processing backend as seen by the controller.
type API interface {
	FileProcessing(ctx context.Context, fileID domain.ID) (*domain.FileProcessing, error)
	CreateJob(ctx context.Context, fileID domain.ID) (*domain.ProcessingJob, error)
	JobStatus(ctx context.Context, jobID domain.ID) (*domain.JobWithResults, error)
	ExecuteJob(ctx context.Context, jobID domain.ID) (*domain.ExecuteResponse, error)
}

// SnapshotRecorder persists every job snapshot the controller applies.
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, job *domain.TrackedJob) error
}

type Option func(*Controller)

func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithAutoExecute makes the controller trigger execution of every job it creates.
func WithAutoExecute(enabled bool) Option {
	return func(c *Controller) {
		c.autoExecute = enabled
	}
}

func WithSnapshotRecorder(recorder SnapshotRecorder) Option {
	return func(c *Controller) {
		c.recorder = recorder
	}
}

// Controller drives processing jobs to a terminal state. At most one poller
// runs per file; concurrent callers for the same file observe the same run.
type Controller struct {
	log         *slog.Logger
	api         API
	interval    time.Duration
	autoExecute bool
	recorder    SnapshotRecorder

	mu        sync.Mutex
	runs      map[domain.ID]*run
	snapshots map[domain.ID]*domain.ProcessingJob
	closed    bool
}

type run struct {
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	observers int

	outcome *domain.Outcome
	err     error
}

func NewController(log *slog.Logger, api API, opts ...Option) *Controller {
	c := &Controller{
		log:       log,
		api:       api,
		interval:  DefaultPollInterval,
		runs:      make(map[domain.ID]*run),
		snapshots: make(map[domain.ID]*domain.ProcessingJob),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ResumeOrStart brings the file's latest job to a terminal state. A missing
// or failed job is replaced by a new one, an in-flight job is polled, and a
// completed job returns its result without polling. If the caller's context
// ends first, the caller detaches; the poller stops once nobody observes it.
func (c *Controller) ResumeOrStart(ctx context.Context, fileID domain.ID) (*domain.Outcome, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: file id", ErrMissingIdentifier)
	}

	r, err := c.attach(ctx, fileID)
	if err != nil {
		return nil, err
	}
	defer c.detach(fileID, r)

	select {
	case <-r.done:
		// every observer gets its own copy; the job and result it points to are never mutated
		if r.outcome == nil {
			return nil, r.err
		}
		outcome := *r.outcome
		return &outcome, r.err
	case <-ctx.Done():
		return nil, cancelledError(ctx.Err())
	}
}

// Poll follows an existing job until it completes or fails.
func (c *Controller) Poll(ctx context.Context, jobID domain.ID) (*domain.Outcome, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id", ErrMissingIdentifier)
	}

	log := c.log.With(slog.String("job_id", jobID.String()))

	return c.poll(ctx, log, "", jobID, func(*domain.ProcessingJob) bool {
		return ctx.Err() == nil
	})
}

// Execute asks the backend to run the job synchronously and returns what it produced.
func (c *Controller) Execute(ctx context.Context, jobID domain.ID) (*domain.ExecuteResponse, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id", ErrMissingIdentifier)
	}

	resp, err := c.api.ExecuteJob(ctx, jobID)
	if err != nil {
		return nil, transportError("execute job", err)
	}

	return resp, nil
}

// Cancel stops the file's active poller. Responses that arrive afterwards are discarded.
func (c *Controller) Cancel(fileID domain.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.runs[fileID]
	if !ok {
		return false
	}

	r.cancel()
	delete(c.runs, fileID)

	return true
}

// State returns the last job snapshot applied for the file.
func (c *Controller) State(fileID domain.ID) (*domain.ProcessingJob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	job, ok := c.snapshots[fileID]

	return job, ok
}

// Active reports whether a poller is running for the file.
func (c *Controller) Active(fileID domain.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.runs[fileID]

	return ok
}

// Close cancels every poller and rejects new runs.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for fileID, r := range c.runs {
		r.cancel()
		delete(c.runs, fileID)
	}
}

func (c *Controller) attach(ctx context.Context, fileID domain.ID) (*run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("%w: controller closed", ErrCancelled)
	}

	if r, ok := c.runs[fileID]; ok {
		r.observers++
		return r, nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r := &run{
		ctx:       runCtx,
		cancel:    cancel,
		done:      make(chan struct{}),
		observers: 1,
	}
	c.runs[fileID] = r

	go c.drive(fileID, r)

	return r, nil
}

func (c *Controller) detach(fileID domain.ID, r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r.observers--
	if r.observers > 0 {
		return
	}

	select {
	case <-r.done:
		return
	default:
	}

	r.cancel()
	if c.runs[fileID] == r {
		delete(c.runs, fileID)
	}
}

func (c *Controller) drive(fileID domain.ID, r *run) {
	outcome, err := c.resumeOrStart(r.ctx, r, fileID)
	if outcome == nil {
		outcome = &domain.Outcome{FileID: fileID}
		if job, ok := c.State(fileID); ok {
			outcome.Job = job
		}
	}
	outcome.Error = err

	c.mu.Lock()
	if c.runs[fileID] == r {
		delete(c.runs, fileID)
	}
	c.mu.Unlock()

	r.cancel()
	r.outcome, r.err = outcome, err
	close(r.done)
}

func (c *Controller) resumeOrStart(ctx context.Context, r *run, fileID domain.ID) (*domain.Outcome, error) {
	log := c.log.With(slog.String("file_id", fileID.String()))
	apply := c.applier(r, fileID)

	bundle, err := c.api.FileProcessing(ctx, fileID)
	if ctx.Err() != nil {
		return nil, cancelledError(ctx.Err())
	}
	if err != nil {
		return nil, transportError("fetch file processing", err)
	}

	job := bundle.Job

	switch {
	case job == nil:
		log.InfoContext(ctx, "no processing job found, starting a new one")
		return c.start(ctx, log, fileID, apply)

	case job.Status == domain.StatusFailed:
		log.InfoContext(ctx, "previous job failed, starting a new one",
			slog.String("job_id", job.ID.String()),
			slog.String("error_message", job.Failure()),
		)
		return c.start(ctx, log, fileID, apply)

	case job.Status.InFlight():
		log.InfoContext(ctx, "resuming in-flight job",
			slog.String("job_id", job.ID.String()),
			slog.String("status", string(job.Status)),
		)

		if !apply(job) {
			return nil, cancelledError(ctx.Err())
		}

		return c.poll(ctx, log, fileID, job.ID, apply)

	case job.Status == domain.StatusCompleted:
		if !apply(job) {
			return nil, cancelledError(ctx.Err())
		}

		return c.completed(ctx, log, fileID, job, bundle.Results)

	default:
		return &domain.Outcome{FileID: fileID, Job: job}, fmt.Errorf("%w %q", ErrUnknownStatus, job.Status)
	}
}

func (c *Controller) start(
	ctx context.Context,
	log *slog.Logger,
	fileID domain.ID,
	apply func(*domain.ProcessingJob) bool,
) (*domain.Outcome, error) {
	job, err := c.api.CreateJob(ctx, fileID)
	if ctx.Err() != nil {
		return nil, cancelledError(ctx.Err())
	}
	if err != nil {
		return nil, transportError("create job", err)
	}

	log = log.With(slog.String("job_id", job.ID.String()))
	log.InfoContext(ctx, "created processing job")

	if !apply(job) {
		return nil, cancelledError(ctx.Err())
	}

	if c.autoExecute {
		log.DebugContext(ctx, "executing job")

		if _, err := c.Execute(ctx, job.ID); err != nil {
			if ctx.Err() != nil {
				return nil, cancelledError(ctx.Err())
			}

			return &domain.Outcome{FileID: fileID, Job: job}, err
		}
	}

	return c.poll(ctx, log, fileID, job.ID, apply)
}

// completed resolves the result of a job that was already completed when
// the bundle was fetched. Bundles without results fall back to one status fetch.
func (c *Controller) completed(
	ctx context.Context,
	log *slog.Logger,
	fileID domain.ID,
	job *domain.ProcessingJob,
	results []domain.ProcessingResult,
) (*domain.Outcome, error) {
	log.InfoContext(ctx, "job already completed", slog.String("job_id", job.ID.String()))

	if len(results) == 0 {
		status, err := c.api.JobStatus(ctx, job.ID)
		if ctx.Err() != nil {
			return nil, cancelledError(ctx.Err())
		}
		if err != nil {
			return &domain.Outcome{FileID: fileID, Job: job}, transportError("fetch job status", err)
		}

		results = status.Results
	}

	if len(results) == 0 {
		return &domain.Outcome{FileID: fileID, Job: job}, fmt.Errorf("job %s: %w", job.ID, ErrNoResult)
	}

	return &domain.Outcome{FileID: fileID, Job: job, Result: &results[0]}, nil
}

// poll fetches the job status once per interval, strictly one request at a
// time, until the job completes or fails. Nothing fetched after ctx is done is applied.
func (c *Controller) poll(
	ctx context.Context,
	log *slog.Logger,
	fileID, jobID domain.ID,
	apply func(*domain.ProcessingJob) bool,
) (*domain.Outcome, error) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	outcome := &domain.Outcome{FileID: fileID}

	for {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return outcome, cancelledError(ctx.Err())
		}

		status, err := c.api.JobStatus(ctx, jobID)
		if ctx.Err() != nil {
			log.DebugContext(ctx, "discarding status received after cancellation")
			return outcome, cancelledError(ctx.Err())
		}

		if err != nil {
			log.WarnContext(ctx, "failed to poll job status", slog.String("err", err.Error()))
			return outcome, transportError("poll job status", err)
		}

		if status.Job == nil {
			return outcome, transportError("poll job status", fmt.Errorf("job %s missing from response", jobID))
		}

		if !apply(status.Job) {
			return outcome, cancelledError(ctx.Err())
		}

		job := status.Job
		outcome.Job = job

		log.DebugContext(ctx, "polled job status", slog.String("status", string(job.Status)))

		switch job.Status {
		case domain.StatusPending, domain.StatusProcessing:
			continue

		case domain.StatusCompleted:
			if len(status.Results) == 0 {
				return outcome, fmt.Errorf("job %s: %w", jobID, ErrNoResult)
			}

			outcome.Result = &status.Results[0]
			log.InfoContext(ctx, "job completed", slog.String("result_id", outcome.Result.ID.String()))

			return outcome, nil

		case domain.StatusFailed:
			log.InfoContext(ctx, "job failed", slog.String("error_message", job.Failure()))
			return outcome, &JobFailedError{JobID: jobID, Message: job.Failure()}

		default:
			return outcome, fmt.Errorf("%w %q", ErrUnknownStatus, job.Status)
		}
	}
}

// applier publishes snapshots of run r unless r has been cancelled.
// The check and the write happen under c.mu, which also guards cancellation.
func (c *Controller) applier(r *run, fileID domain.ID) func(*domain.ProcessingJob) bool {
	return func(job *domain.ProcessingJob) bool {
		c.mu.Lock()
		if r.ctx.Err() != nil {
			c.mu.Unlock()
			return false
		}
		c.snapshots[fileID] = job
		c.mu.Unlock()

		c.record(r.ctx, fileID, job)

		return true
	}
}

func (c *Controller) record(ctx context.Context, fileID domain.ID, job *domain.ProcessingJob) {
	if c.recorder == nil {
		return
	}

	if err := c.recorder.RecordSnapshot(ctx, domain.NewTrackedJob(fileID, job)); err != nil {
		c.log.WarnContext(ctx, "failed to record job snapshot",
			slog.String("file_id", fileID.String()),
			slog.String("err", err.Error()),
		)
	}
}
