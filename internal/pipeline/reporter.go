package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

type Reporter struct {
	log             *slog.Logger
	outputDir       string
	reports         <-chan *domain.Analytics
	reportGenerator ReportGenerator
}

func NewReporter(
	log *slog.Logger,
	outputDir string,
	reports <-chan *domain.Analytics,
	reportGenerator ReportGenerator,
) *Reporter {
	return &Reporter{
		log:             log,
		outputDir:       outputDir,
		reports:         reports,
		reportGenerator: reportGenerator,
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	for {
		select {
		case analytics, ok := <-r.reports:
			if !ok {
				return nil
			}

			log := r.log.With(
				slog.String("file_id", analytics.FileID.String()),
				slog.String("result_id", analytics.ResultID.String()),
			)

			log.InfoContext(ctx, "received analytics, generating report")

			if err := r.processAnalytics(analytics); err != nil {
				log.ErrorContext(ctx, "failed to generate report", slog.String("err", err.Error()))
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Reporter) processAnalytics(analytics *domain.Analytics) error {
	base := filepath.Join(r.outputDir, ReportName(analytics))

	if err := r.reportGenerator.GenerateReport(base+".pdf", analytics); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}

	if err := r.reportGenerator.GenerateCSV(base+".csv", analytics); err != nil {
		return fmt.Errorf("csv: %w", err)
	}

	return nil
}

// ReportName is the file name, without extension, of the reports of one result.
func ReportName(analytics *domain.Analytics) string {
	return fmt.Sprintf("file_%s_result_%s", sanitize(analytics.FileID), sanitize(analytics.ResultID))
}

// sanitize keeps ids usable as file name parts; they are opaque and may hold anything.
func sanitize(id domain.ID) string {
	if id == "" {
		return "unknown"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id.String())
}
