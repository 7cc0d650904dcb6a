package lifecycle_test

import (
	"context"
	"errors"
	"sync"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

type statusReply struct {
	status *domain.JobWithResults
	err    error
}

// fakeAPI replays scripted backend responses. Once the status script runs
// out, the last reply repeats.
type fakeAPI struct {
	mu sync.Mutex

	bundle    *domain.FileProcessing
	bundleErr error
	created   *domain.ProcessingJob
	createErr error
	execErr   error
	statuses  []statusReply

	// statusGate, when set, blocks every JobStatus call until it receives a value.
	// The block ignores ctx so a response can arrive after cancellation.
	statusGate chan struct{}

	bundleCalls   int
	createCalls   int
	execCalls     int
	statusCalls   int
	statusEntered int
}

func (f *fakeAPI) FileProcessing(_ context.Context, _ domain.ID) (*domain.FileProcessing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bundleCalls++
	if f.bundleErr != nil {
		return nil, f.bundleErr
	}
	if f.bundle == nil {
		return &domain.FileProcessing{}, nil
	}

	return f.bundle, nil
}

func (f *fakeAPI) CreateJob(_ context.Context, _ domain.ID) (*domain.ProcessingJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}

	return f.created, nil
}

func (f *fakeAPI) ExecuteJob(_ context.Context, jobID domain.ID) (*domain.ExecuteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.execCalls++
	if f.execErr != nil {
		return nil, f.execErr
	}

	return &domain.ExecuteResponse{Status: "completed", JobID: jobID}, nil
}

func (f *fakeAPI) JobStatus(_ context.Context, _ domain.ID) (*domain.JobWithResults, error) {
	f.mu.Lock()
	gate := f.statusGate
	f.statusEntered++
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.statusCalls
	f.statusCalls++

	if len(f.statuses) == 0 {
		return nil, errors.New("no status scripted")
	}
	if call >= len(f.statuses) {
		call = len(f.statuses) - 1
	}

	reply := f.statuses[call]

	return reply.status, reply.err
}

func (f *fakeAPI) entered() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.statusEntered
}

func (f *fakeAPI) counts() (bundle, create, exec, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.bundleCalls, f.createCalls, f.execCalls, f.statusCalls
}

type fakeRecorder struct {
	mu   sync.Mutex
	jobs []*domain.TrackedJob
}

func (r *fakeRecorder) RecordSnapshot(_ context.Context, job *domain.TrackedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, job)

	return nil
}

func (r *fakeRecorder) statuses() []domain.JobStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make([]domain.JobStatus, 0, len(r.jobs))
	for _, job := range r.jobs {
		statuses = append(statuses, job.Status)
	}

	return statuses
}

func job(id domain.ID, status domain.JobStatus) *domain.ProcessingJob {
	return &domain.ProcessingJob{ID: id, FileID: "42", Status: status}
}

func failedJob(id domain.ID, message string) *domain.ProcessingJob {
	j := job(id, domain.StatusFailed)
	j.ErrorMessage = &message

	return j
}

func result(id, jobID domain.ID) domain.ProcessingResult {
	return domain.ProcessingResult{ID: id, JobID: jobID}
}

func reply(j *domain.ProcessingJob, results ...domain.ProcessingResult) statusReply {
	return statusReply{status: &domain.JobWithResults{Job: j, Results: results}}
}
