package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// SQLite writes the ledger to a SQLite database file.
type SQLite struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath, table string, logger *slog.Logger) (*SQLite, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLite{db: db, table: table, logger: logger.With("component", "sqlite")}, nil
}

// Replace implements Sink.
func (s *SQLite) Replace(ctx context.Context, rows []model.ReconciledRow, label, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, s.table)); err != nil {
		return fmt.Errorf("drop table %s: %w", s.table, err)
	}
	create := fmt.Sprintf(`CREATE TABLE %q (
		Month TEXT NOT NULL,
		Income TEXT NOT NULL,
		Expenses TEXT NOT NULL,
		Savings TEXT NOT NULL,
		Host TEXT NOT NULL,
		RunID TEXT NOT NULL
	)`, s.table)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %q (Month, Income, Expenses, Savings, Host, RunID) VALUES (?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		row := toRow(r, label, runID)
		if _, err := stmt.ExecContext(ctx, row.Month, row.Income, row.Expenses, row.Savings, row.Host, row.RunID); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.InfoContext(ctx, "ledger saved to SQLite", "table", s.table, "rows", len(rows), "run_id", runID)
	return nil
}

// Rows reads back the persisted table in insertion order.
func (s *SQLite) Rows(ctx context.Context) ([]Row, error) {
	q := fmt.Sprintf(`SELECT Month, Income, Expenses, Savings, Host, RunID FROM %q ORDER BY rowid`, s.table)
	rs, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rs.Close()

	var out []Row
	for rs.Next() {
		var r Row
		if err := rs.Scan(&r.Month, &r.Income, &r.Expenses, &r.Savings, &r.Host, &r.RunID); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, r)
	}
	return out, rs.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
