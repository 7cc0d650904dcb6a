package report_generator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

const notAvailable = "n/a"

var (
	titleStyle   = props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}
	headingStyle = props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}
	labelStyle   = props.Text{Size: 9, Style: fontstyle.Bold}
	valueStyle   = props.Text{Size: 9}
	headerStyle  = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Top: 1}
	cellStyle    = props.Text{Size: 9, Align: align.Center, Top: 1}

	headerCell = &props.Cell{BackgroundColor: &props.Color{Red: 220, Green: 220, Blue: 220}}

	tierColors = map[domain.Tier]*props.Color{
		domain.TierLow:      {Red: 46, Green: 125, Blue: 50},
		domain.TierMedium:   {Red: 239, Green: 108, Blue: 0},
		domain.TierHigh:     {Red: 198, Green: 40, Blue: 40},
		domain.TierCritical: {Red: 136, Green: 14, Blue: 79},
	}

	dimensionTitles = map[domain.Dimension]string{
		domain.DimensionShape:  "Errors by shape",
		domain.DimensionPart:   "Errors by part number",
		domain.DimensionModule: "Errors by module",
	}
)

type ReportGenerator struct {
	now func() time.Time
}

func New() *ReportGenerator {
	return &ReportGenerator{now: time.Now}
}

// GenerateReport renders the analytics of one file into a PDF at outputPath.
func (g *ReportGenerator) GenerateReport(outputPath string, a *domain.Analytics) error {
	doc, err := g.document(a)
	if err != nil {
		return err
	}

	if err := doc.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

func (g *ReportGenerator) RenderPDF(a *domain.Analytics) ([]byte, error) {
	doc, err := g.document(a)
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}

func (g *ReportGenerator) document(a *domain.Analytics) (core.Document, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(text.NewRow(12, "Defect analysis report", titleStyle))
	m.AddRows(summaryRows(a, g.now())...)

	if a.Performance != nil {
		m.AddRows(performanceRows(a.Performance)...)
	}

	for _, dim := range a.Dimensions() {
		m.AddRows(dimensionRows(dim)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	return doc, nil
}

func summaryRows(a *domain.Analytics, generatedAt time.Time) []core.Row {
	return []core.Row{
		line.NewRow(4),
		field("File", a.FileID.String()),
		field("Job", a.JobID.String()),
		field("Result", a.ResultID.String()),
		field("Total errors", strconv.FormatInt(a.TotalErrors, 10)),
		field("Error rate", fmt.Sprintf("%.2f%%", a.ErrorRate)),
		field("AI score", optional(a.AIScore)),
		field("Confidence level", optional(a.ConfidenceLevel)),
		field("Generated at", generatedAt.Format(time.DateTime)),
	}
}

func performanceRows(p *domain.ModelPerformance) []core.Row {
	return []core.Row{
		text.NewRow(10, "Model performance", headingStyle),
		field("Accuracy", fmt.Sprintf("%.4f", p.Accuracy)),
		field("Precision", fmt.Sprintf("%.4f", p.Precision)),
		field("Recall", fmt.Sprintf("%.4f", p.Recall)),
		field("F1 score", fmt.Sprintf("%.4f", p.F1Score)),
		field("Samples (valid / total)", fmt.Sprintf("%d / %d", p.ValidSamples, p.TotalSamples)),
		field("NaN samples", strconv.FormatInt(p.NaNSamples, 10)),
	}
}

func dimensionRows(dim *domain.DimensionSummary) []core.Row {
	rows := []core.Row{
		line.NewRow(4),
		text.NewRow(10, dimensionTitles[dim.Dimension], headingStyle),
	}

	if len(dim.Series) == 0 {
		return append(rows, text.NewRow(7, "No data", valueStyle))
	}

	if dim.MostFrequent != nil {
		rows = append(rows, field("Most frequent",
			fmt.Sprintf("%s (%d)", dim.MostFrequent.Name, dim.MostFrequent.Count),
		))
	}

	rows = append(rows,
		field("Total", strconv.FormatInt(dim.Total, 10)),
		row.New(7).
			Add(
				text.NewCol(6, "Name", headerStyle),
				text.NewCol(2, "Count", headerStyle),
				text.NewCol(2, "Share", headerStyle),
				text.NewCol(2, "Tier", headerStyle),
			).
			WithStyle(headerCell),
	)

	for _, entry := range dim.Series {
		tierStyle := cellStyle
		tierStyle.Color = tierColors[entry.Tier]

		rows = append(rows, row.New(6).Add(
			text.NewCol(6, entry.Name, cellStyle),
			text.NewCol(2, strconv.FormatInt(entry.Count, 10), cellStyle),
			text.NewCol(2, fmt.Sprintf("%.2f%%", entry.Percentage), cellStyle),
			text.NewCol(2, string(entry.Tier), tierStyle),
		))
	}

	return rows
}

func field(label, value string) core.Row {
	return row.New(6).Add(
		text.NewCol(4, label, labelStyle),
		text.NewCol(8, value, valueStyle),
	)
}

func optional(v *float64) string {
	if v == nil {
		return notAvailable
	}

	return strconv.FormatFloat(*v, 'f', 4, 64)
}
