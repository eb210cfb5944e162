package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pulseboard/internal/errors"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in dependency order. Every statement
// is idempotent so the runner can execute on each startup.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	steps := []struct {
		name string
		fn   func(context.Context, *sqlx.DB) error
	}{
		{"pillars", r.createPillarsTable},
		{"departments", r.createDepartmentsTable},
		{"kpis", r.createKPIsTable},
		{"targets", r.createTargetsTable},
		{"actuals", r.createActualsTable},
		{"alerts", r.createAlertsTable},
		{"indexes", r.createIndexes},
	}
	for _, step := range steps {
		if err := step.fn(ctx, db); err != nil {
			return errors.Wrapf(err, "failed to create %s", step.name)
		}
	}
	return nil
}

func (r *MigrationRunner) createPillarsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pillars (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createDepartmentsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS departments (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createKPIsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kpis (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			unit VARCHAR(50) NOT NULL,
			data_type VARCHAR(20) NOT NULL,
			frequency VARCHAR(20) NOT NULL,
			polarity VARCHAR(20) NOT NULL DEFAULT 'higher_is_better',
			department_id UUID NOT NULL REFERENCES departments(id),
			pillar_id UUID NOT NULL REFERENCES pillars(id),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createTargetsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS targets (
			id UUID PRIMARY KEY,
			kpi_id UUID NOT NULL REFERENCES kpis(id),
			year INTEGER NOT NULL,
			quarter INTEGER NOT NULL DEFAULT 0,
			value DOUBLE PRECISION NOT NULL,
			threshold_green DOUBLE PRECISION NOT NULL,
			threshold_amber DOUBLE PRECISION NOT NULL,
			threshold_red DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (kpi_id, year, quarter)
		)
	`)
	return err
}

func (r *MigrationRunner) createActualsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS actuals (
			id UUID PRIMARY KEY,
			kpi_id UUID NOT NULL REFERENCES kpis(id),
			target_id UUID NOT NULL REFERENCES targets(id),
			value DOUBLE PRECISION NOT NULL,
			submitted_by UUID NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			evidence TEXT[] NOT NULL DEFAULT '{}',
			comments TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			reviewed_by UUID,
			reviewed_at TIMESTAMPTZ,
			review_comments TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *MigrationRunner) createAlertsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS alerts (
			id UUID PRIMARY KEY,
			type VARCHAR(30) NOT NULL,
			severity VARCHAR(10) NOT NULL,
			title VARCHAR(500) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			kpi_id UUID REFERENCES kpis(id),
			department_id UUID REFERENCES departments(id),
			triggered_by UUID,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			is_resolved BOOLEAN NOT NULL DEFAULT FALSE,
			resolved_by UUID,
			resolved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_kpis_department ON kpis(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_targets_kpi_period ON targets(kpi_id, year, quarter)`,
		`CREATE INDEX IF NOT EXISTS idx_actuals_kpi_period ON actuals(kpi_id, target_id, submitted_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_unresolved ON alerts(is_resolved, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_kpi ON alerts(kpi_id)`,
	}
	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return err
		}
	}
	return nil
}
