package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kurochkinivan/defect_reporter/internal/analytics"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/kurochkinivan/defect_reporter/internal/infrastructure/processing_api"
	"github.com/kurochkinivan/defect_reporter/internal/infrastructure/report_generator"
	"github.com/kurochkinivan/defect_reporter/internal/lifecycle"
	"github.com/kurochkinivan/defect_reporter/internal/pipeline"
)

var exportExtensions = map[string]string{
	processing_api.ExportCSV:   ".csv",
	processing_api.ExportExcel: ".xlsx",
	processing_api.ExportJSON:  ".json",
}

type analyzeSummary struct {
	Analytics *domain.Analytics `json:"analytics"`
	Exports   []domain.Export   `json:"exports,omitempty"`
	Files     []string          `json:"files"`
}

type AnalyzeRequest struct {
	FileID domain.ID
	// ResultID skips job tracking and renders an already known result.
	ResultID  domain.ID
	Downloads []string
}

// Analyze drives a single file to completion without the database and HTTP
// server, writes its reports and prints a JSON summary to out.
func (a *App) Analyze(ctx context.Context, out io.Writer, req AnalyzeRequest) error {
	fileID := req.FileID
	log := a.log.With(slog.String("file_id", fileID.String()))

	client, err := a.newClient()
	if err != nil {
		return err
	}

	result, err := a.result(ctx, log, client, req)
	if err != nil {
		return fmt.Errorf("file %s: %w", fileID, err)
	}

	view := analytics.NewAssembler(log).Assemble(fileID, result)
	base := filepath.Join(a.cfg.App.ReportsDirectory, pipeline.ReportName(view))
	generator := report_generator.New()

	summary := &analyzeSummary{
		Analytics: view,
		Files:     []string{base + ".pdf", base + ".csv"},
	}

	if err := generator.GenerateReport(base+".pdf", view); err != nil {
		return fmt.Errorf("failed to generate pdf report: %w", err)
	}

	if err := generator.GenerateCSV(base+".csv", view); err != nil {
		return fmt.Errorf("failed to generate csv report: %w", err)
	}

	summary.Exports, err = client.ResultExports(ctx, result.ID)
	if err != nil {
		log.WarnContext(ctx, "failed to list result exports", slog.String("err", err.Error()))
	}

	for _, exportType := range req.Downloads {
		exportType = strings.ToLower(exportType)

		blob, err := client.DownloadExport(ctx, result.ID, exportType)
		if err != nil {
			return fmt.Errorf("failed to download %s export: %w", exportType, err)
		}

		path := base + "_export" + exportExtensions[exportType]
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return fmt.Errorf("failed to write %s export: %w", exportType, err)
		}

		log.InfoContext(ctx, "export downloaded",
			slog.String("type", exportType),
			slog.String("path", path),
			slog.Int("size", len(blob)),
		)

		summary.Files = append(summary.Files, path)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(summary)
}

func (a *App) result(
	ctx context.Context,
	log *slog.Logger,
	client *processing_api.Client,
	req AnalyzeRequest,
) (*domain.ProcessingResult, error) {
	if req.ResultID != "" {
		log.InfoContext(ctx, "fetching result", slog.String("result_id", req.ResultID.String()))
		return client.Result(ctx, req.ResultID)
	}

	controller := lifecycle.NewController(log, client,
		lifecycle.WithPollInterval(a.cfg.App.PollInterval),
		lifecycle.WithAutoExecute(a.cfg.App.AutoExecute),
	)
	defer controller.Close()

	log.InfoContext(ctx, "analyzing file")

	outcome, err := controller.ResumeOrStart(ctx, req.FileID)
	if err != nil {
		return nil, err
	}

	if outcome.Result == nil {
		return nil, lifecycle.ErrNoResult
	}

	return outcome.Result, nil
}
