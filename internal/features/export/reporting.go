package export

import (
	"context"
	"database/sql"
	"fmt"

	"go-casework/internal/config"

	_ "github.com/lib/pq"
)

// ReportingDB is the external Postgres warehouse that centres report
// from. Case snapshots are pushed into it on demand; the application
// never reads it back.
type ReportingDB struct {
	db *sql.DB
}

func NewReportingDB(cfg *config.Config) (*ReportingDB, error) {
	if cfg.ReportingDSN == "" {
		return &ReportingDB{}, nil
	}

	db, err := sql.Open("postgres", cfg.ReportingDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open reporting database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &ReportingDB{db: db}, nil
}

func (r *ReportingDB) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *ReportingDB) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("reporting database not configured")
	}

	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS case_snapshots (
			case_id     TEXT PRIMARY KEY,
			centre_id   TEXT NOT NULL,
			reference   TEXT NOT NULL,
			status      TEXT NOT NULL,
			priority    TEXT,
			total_debt  DOUBLE PRECISION,
			debt_count  INTEGER,
			exported_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (r *ReportingDB) UpsertSnapshot(ctx context.Context, s *CaseSnapshot) error {
	if r.db == nil {
		return fmt.Errorf("reporting database not configured")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO case_snapshots
			(case_id, centre_id, reference, status, priority, total_debt, debt_count, exported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (case_id) DO UPDATE SET
			status      = EXCLUDED.status,
			priority    = EXCLUDED.priority,
			total_debt  = EXCLUDED.total_debt,
			debt_count  = EXCLUDED.debt_count,
			exported_at = EXCLUDED.exported_at`,
		s.CaseID, s.CentreID, s.Reference, s.Status, s.Priority,
		s.TotalDebt, s.DebtCount, s.ExportedAt)
	return err
}
