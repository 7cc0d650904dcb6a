package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kurochkinivan/defect_reporter/internal/analytics"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

type Writer struct {
	log           *slog.Logger
	outcomes      <-chan *domain.Outcome
	reports       chan<- *domain.Analytics
	assembler     AnalyticsAssembler
	jobRecorder   JobRecorder
	analysesSaver AnalysesSaver
	transactor    Transactor
}

func NewWriter(
	log *slog.Logger,
	outcomes <-chan *domain.Outcome,
	reports chan<- *domain.Analytics,
	assembler AnalyticsAssembler,
	jobRecorder JobRecorder,
	analysesSaver AnalysesSaver,
	transactor Transactor,
) *Writer {
	return &Writer{
		log:           log,
		outcomes:      outcomes,
		reports:       reports,
		assembler:     assembler,
		jobRecorder:   jobRecorder,
		analysesSaver: analysesSaver,
		transactor:    transactor,
	}
}

func (w *Writer) Run(ctx context.Context) error {
	defer close(w.reports)

	for {
		select {
		case outcome, ok := <-w.outcomes:
			if !ok {
				return nil
			}

			log := w.log.With(slog.String("file_id", outcome.FileID.String()))
			if outcome.Job != nil {
				log = log.With(slog.String("job_id", outcome.Job.ID.String()))
			}

			log.InfoContext(ctx, "received outcome")

			analytics, err := w.processOutcome(ctx, log, outcome)
			if err != nil {
				log.ErrorContext(ctx, "failed to process outcome", slog.String("err", err.Error()))
				continue
			}

			if analytics == nil {
				continue
			}

			select {
			case w.reports <- analytics:
			case <-ctx.Done():
				return ctx.Err()
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Writer) processOutcome(ctx context.Context, log *slog.Logger, outcome *domain.Outcome) (*domain.Analytics, error) {
	if outcome.Error != nil || outcome.Result == nil {
		log.InfoContext(ctx, "skipping outcome without result")
		return nil, nil
	}

	analytics := w.assembler.Assemble(outcome.FileID, outcome.Result)
	if analytics.JobID == "" && outcome.Job != nil {
		analytics.JobID = outcome.Job.ID
	}

	log.DebugContext(ctx, "saving analysis",
		slog.String("result_id", analytics.ResultID.String()),
		slog.Int64("total_errors", analytics.TotalErrors),
	)

	if err := w.saveAnalytics(ctx, log, outcome, analytics); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	return analytics, nil
}

// saveAnalytics stores the analysis, its display series and the completed
// job snapshot atomically. An already stored result is not saved twice.
func (w *Writer) saveAnalytics(
	ctx context.Context,
	log *slog.Logger,
	outcome *domain.Outcome,
	view *domain.Analytics,
) error {
	return w.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		id, created, err := w.analysesSaver.SaveAnalysis(ctx, domain.NewAnalysisRecord(view))
		if err != nil {
			return fmt.Errorf("failed to save analysis record: %w", err)
		}

		if created {
			view.ID = id

			// stored percentages are rounded for display, the forwarded view keeps full precision
			if entries := view.SeriesEntries(); len(entries) > 0 {
				for _, e := range entries {
					e.Percentage = analytics.RoundPercentage(e.Percentage)
				}

				if err := w.analysesSaver.SaveSeries(ctx, entries...); err != nil {
					return fmt.Errorf("failed to save series: %w", err)
				}
			}
		} else {
			log.DebugContext(ctx, "analysis already stored")
		}

		if outcome.Job != nil {
			if err := w.jobRecorder.RecordSnapshot(ctx, domain.NewTrackedJob(outcome.FileID, outcome.Job)); err != nil {
				return fmt.Errorf("failed to record job: %w", err)
			}
		}

		return nil
	})
}
