package pipeline

import (
	"context"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

type LifecycleController interface {
	ResumeOrStart(ctx context.Context, fileID domain.ID) (*domain.Outcome, error)
}

type AnalyticsAssembler interface {
	Assemble(fileID domain.ID, result *domain.ProcessingResult) *domain.Analytics
}

type JobRecorder interface {
	RecordSnapshot(ctx context.Context, job *domain.TrackedJob) error
}

type ActiveJobsProvider interface {
	ActiveJobs(ctx context.Context) ([]*domain.TrackedJob, error)
}

type AnalysesSaver interface {
	SaveAnalysis(ctx context.Context, record *domain.AnalysisRecord) (id int64, created bool, err error)
	SaveSeries(ctx context.Context, entries ...*domain.DimensionEntry) error
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ReportGenerator interface {
	GenerateReport(outputPath string, analytics *domain.Analytics) error
	GenerateCSV(outputPath string, analytics *domain.Analytics) error
}
