package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// Postgres writes the ledger to a PostgreSQL table.
type Postgres struct {
	conn   *pgx.Conn
	table  string
	logger *slog.Logger
}

// NewPostgres connects with dsn and verifies the connection.
func NewPostgres(ctx context.Context, dsn, table string, logger *slog.Logger) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := pgx.ConnectConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := conn.Ping(connectCtx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger = logger.With("component", "postgres")
	logger.Info("connected to PostgreSQL", "host", cfg.Host, "database", cfg.Database)

	return &Postgres{conn: conn, table: table, logger: logger}, nil
}

// Replace implements Sink.
func (p *Postgres) Replace(ctx context.Context, rows []model.ReconciledRow, label, runID string) error {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	ident := pgx.Identifier{p.table}.Sanitize()
	if _, err := tx.Exec(ctx, `DROP TABLE IF EXISTS `+ident); err != nil {
		return fmt.Errorf("drop table %s: %w", p.table, err)
	}
	create := `CREATE TABLE ` + ident + ` (
		month DATE NOT NULL,
		income NUMERIC NOT NULL,
		expenses NUMERIC NOT NULL,
		savings NUMERIC NOT NULL,
		host TEXT NOT NULL,
		run_id UUID NOT NULL
	)`
	if _, err := tx.Exec(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", p.table, err)
	}

	insert := `INSERT INTO ` + ident + ` (month, income, expenses, savings, host, run_id) VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, r := range rows {
		row := toRow(r, label, runID)
		batch.Queue(insert, row.Month, row.Income, row.Expenses, row.Savings, row.Host, row.RunID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	p.logger.InfoContext(ctx, "ledger saved to PostgreSQL", "table", p.table, "rows", len(rows), "run_id", runID)
	return nil
}

// Close closes the connection.
func (p *Postgres) Close() error {
	return p.conn.Close(context.Background())
}
