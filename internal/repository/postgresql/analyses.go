package postgresql

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

const (
	TableAnalyses      = "analyses"
	TableSeriesEntries = "series_entries"
)

var analysisColumns = []string{
	"id",
	"file_id",
	"job_id",
	"result_id",
	"total_errors",
	"error_rate",
	"ai_score",
	"confidence_level",
	"top_shape",
	"top_part",
	"top_module",
	"created_at",
}

var seriesColumns = []string{
	"analysis_id",
	"dimension",
	"position",
	"name",
	"count",
	"percentage",
	"tier",
}

type AnalysesRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewAnalysesRepository(pool *pgxpool.Pool) *AnalysesRepository {
	return &AnalysesRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveAnalysis stores one analysis per result. created is false when the
// result has already been stored; the returned id is then zero.
func (r *AnalysesRepository) SaveAnalysis(ctx context.Context, record *domain.AnalysisRecord) (id int64, created bool, err error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableAnalyses).
		Columns(analysisColumns[1:]...).
		Values(
			record.FileID,
			record.JobID,
			record.ResultID,
			record.TotalErrors,
			record.ErrorRate,
			record.AIScore,
			record.ConfidenceLevel,
			record.TopShape,
			record.TopPart,
			record.TopModule,
			record.CreatedAt,
		).
		Suffix("ON CONFLICT (result_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, false, createQueryError(err)
	}

	err = db.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, scanRowError(err)
	}

	return id, true, nil
}

func (r *AnalysesRepository) SaveSeries(ctx context.Context, entries ...*domain.DimensionEntry) error {
	db := extractDB(ctx, r.pool)

	copied, err := db.CopyFrom(ctx, pgx.Identifier{TableSeriesEntries}, seriesColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			return []any{
				entries[i].AnalysisID,
				string(entries[i].Dimension),
				entries[i].Position,
				entries[i].Name,
				entries[i].Count,
				entries[i].Percentage,
				string(entries[i].Tier),
			}, nil
		}),
	)
	if err != nil {
		return copyRowsError(TableSeriesEntries, err)
	}

	if copied != int64(len(entries)) {
		return fmt.Errorf("failed to save series: copied %d rows, expected %d", copied, len(entries))
	}

	return nil
}

func (r *AnalysesRepository) LatestAnalysis(ctx context.Context, fileID domain.ID) (*domain.AnalysisRecord, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(analysisColumns...).
		From(TableAnalyses).
		Where(sq.Eq{"file_id": fileID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.AnalysisRecord])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return record, nil
}

func (r *AnalysesRepository) AnalysesByFile(
	ctx context.Context,
	fileID domain.ID,
	limit, offset uint64,
) ([]*domain.AnalysisRecord, int, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select("COUNT(*)").
		From(TableAnalyses).
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		return nil, -1, createQueryError(err)
	}

	var total int
	if err := db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, -1, scanRowError(err)
	}

	sql, args, err = r.qb.
		Select(analysisColumns...).
		From(TableAnalyses).
		Where(sq.Eq{"file_id": fileID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, -1, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, -1, executeQueryError(err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.AnalysisRecord])
	if err != nil {
		return nil, -1, collectRowsError(err)
	}

	return records, total, nil
}

func (r *AnalysesRepository) Series(ctx context.Context, analysisID int64) ([]*domain.DimensionEntry, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(seriesColumns...).
		From(TableSeriesEntries).
		Where(sq.Eq{"analysis_id": analysisID}).
		OrderBy("dimension ASC", "position ASC").
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.DimensionEntry])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return entries, nil
}
