package database

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. Constraints carry the
// invariants the repositories rely on: positive amounts, non-negative cached
// balances, one attendance entry per worker per day, one bonus record per
// worker per period.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS workers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			hourly_rate NUMERIC(12,2) NOT NULL CHECK (hourly_rate >= 0),
			standard_daily_hours NUMERIC(4,2) NOT NULL DEFAULT 8 CHECK (standard_daily_hours > 0),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			balance NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			worker_id UUID NOT NULL REFERENCES workers(id),
			kind TEXT NOT NULL CHECK (kind IN ('advance', 'repayment', 'deposit')),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			date DATE NOT NULL,
			balance_after NUMERIC(14,2) NOT NULL CHECK (balance_after >= 0),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_transactions_worker
			ON ledger_transactions (worker_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS attendance_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			worker_id UUID NOT NULL REFERENCES workers(id),
			date DATE NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('present', 'absent', 'holiday', 'half_day')),
			hours_worked NUMERIC(4,2) NOT NULL DEFAULT 0 CHECK (hours_worked >= 0),
			total_pay NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (total_pay >= 0),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (worker_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS holidays (
			date DATE PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS bonus_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			worker_id UUID NOT NULL REFERENCES workers(id),
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			days_absent INT NOT NULL DEFAULT 0,
			chargeable_absences INT NOT NULL DEFAULT 0,
			base_bonus NUMERIC(14,2) NOT NULL DEFAULT 0,
			penalty NUMERIC(14,2) NOT NULL DEFAULT 0,
			extra_bonus NUMERIC(14,2) NOT NULL DEFAULT 0,
			employee_deposit NUMERIC(14,2) NOT NULL DEFAULT 0,
			gross_bonus NUMERIC(14,2) NOT NULL DEFAULT 0,
			net_bonus NUMERIC(14,2) NOT NULL DEFAULT 0,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			amount_paid NUMERIC(14,2),
			is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (worker_id, period_start, period_end)
		)`,
		`CREATE TABLE IF NOT EXISTS settlement_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			type TEXT NOT NULL CHECK (type IN ('bonus', 'salary')),
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			entries JSONB NOT NULL,
			total_gross NUMERIC(14,2) NOT NULL DEFAULT 0,
			total_net NUMERIC(14,2) NOT NULL DEFAULT 0,
			total_deposits NUMERIC(14,2) NOT NULL DEFAULT 0,
			total_advances NUMERIC(14,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
