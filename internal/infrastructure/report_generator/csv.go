package report_generator

import (
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/kurochkinivan/defect_reporter/internal/analytics"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

type seriesRow struct {
	Dimension domain.Dimension `csv:"dimension"`
	domain.SeriesEntry
	Grouped bool `csv:"grouped"`
}

// GenerateCSV writes every dimension's full classified list into outputPath.
func (g *ReportGenerator) GenerateCSV(outputPath string, a *domain.Analytics) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	if err := g.WriteCSV(f, a); err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}

	return nil
}

// WriteCSV writes one row per canonical entry with the percentage rounded to
// two decimals. Grouped marks entries that the display series folds into Others.
func (g *ReportGenerator) WriteCSV(w io.Writer, a *domain.Analytics) error {
	rows := make([]seriesRow, 0)

	for _, dim := range a.Dimensions() {
		shown := make(map[string]struct{}, len(dim.Series))
		for _, entry := range dim.Series {
			shown[entry.Name] = struct{}{}
		}

		for _, entry := range dim.All {
			_, ok := shown[entry.Name]
			entry.Percentage = analytics.RoundPercentage(entry.Percentage)
			rows = append(rows, seriesRow{
				Dimension:   dim.Dimension,
				SeriesEntry: entry,
				Grouped:     !ok,
			})
		}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}
