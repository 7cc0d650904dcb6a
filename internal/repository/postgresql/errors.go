package postgresql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

// pgerrcode foreign_key_violation
const foreignKeyViolation = "23503"

func createQueryError(err error) error {
	return fmt.Errorf("failed to create query: %w", err)
}

func executeQueryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("failed to execute query: %w: %s", domain.ErrNotFound, pgErr.Detail)
	}

	return fmt.Errorf("failed to execute query: %w", err)
}

func scanRowError(err error) error {
	return fmt.Errorf("failed to scan row: %w", err)
}

func collectRowsError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	return fmt.Errorf("failed to collect rows: %w", err)
}

func copyRowsError(table string, err error) error {
	return fmt.Errorf("failed to copy rows into %s: %w", table, executeQueryError(err))
}
