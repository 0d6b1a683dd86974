package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bonusRepository struct {
	db *database.DB
}

func NewBonusRepository(db *database.DB) settlement.BonusRepository {
	return &bonusRepository{db: db}
}

const bonusColumns = `
	id, worker_id, period_start, period_end, days_absent, chargeable_absences,
	base_bonus, penalty, extra_bonus, employee_deposit, gross_bonus, net_bonus,
	is_paid, amount_paid, is_finalized, notes, created_at, updated_at
`

func scanBonus(row pgx.Row) (settlement.BonusRecord, error) {
	var r settlement.BonusRecord
	err := row.Scan(
		&r.ID, &r.WorkerID, &r.PeriodStart, &r.PeriodEnd, &r.DaysAbsent, &r.ChargeableAbsences,
		&r.BaseBonus, &r.Penalty, &r.ExtraBonus, &r.EmployeeDeposit, &r.GrossBonus, &r.NetBonus,
		&r.IsPaid, &r.AmountPaid, &r.IsFinalized, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (repo *bonusRepository) Create(ctx context.Context, r settlement.BonusRecord) (settlement.BonusRecord, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		INSERT INTO bonus_records (
			worker_id, period_start, period_end, days_absent, chargeable_absences,
			base_bonus, penalty, extra_bonus, employee_deposit, gross_bonus, net_bonus,
			is_paid, amount_paid, is_finalized, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		r.WorkerID, r.PeriodStart, r.PeriodEnd, r.DaysAbsent, r.ChargeableAbsences,
		r.BaseBonus, r.Penalty, r.ExtraBonus, r.EmployeeDeposit, r.GrossBonus, r.NetBonus,
		r.IsPaid, r.AmountPaid, r.IsFinalized, r.Notes,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return settlement.BonusRecord{}, fmt.Errorf("failed to create bonus record: %w", err)
	}

	return r, nil
}

func (repo *bonusRepository) Update(ctx context.Context, r settlement.BonusRecord) (settlement.BonusRecord, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		UPDATE bonus_records SET
			days_absent = $2, chargeable_absences = $3, base_bonus = $4, penalty = $5,
			extra_bonus = $6, employee_deposit = $7, gross_bonus = $8, net_bonus = $9,
			is_paid = $10, amount_paid = $11, is_finalized = $12, notes = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		r.ID, r.DaysAbsent, r.ChargeableAbsences, r.BaseBonus, r.Penalty,
		r.ExtraBonus, r.EmployeeDeposit, r.GrossBonus, r.NetBonus,
		r.IsPaid, r.AmountPaid, r.IsFinalized, r.Notes,
	).Scan(&r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settlement.BonusRecord{}, settlement.ErrBonusRecordNotFound
		}
		return settlement.BonusRecord{}, fmt.Errorf("failed to update bonus record: %w", err)
	}

	return r, nil
}

func (repo *bonusRepository) GetByID(ctx context.Context, id string) (settlement.BonusRecord, error) {
	q := GetQuerier(ctx, repo.db)

	r, err := scanBonus(q.QueryRow(ctx,
		`SELECT `+bonusColumns+` FROM bonus_records WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return settlement.BonusRecord{}, settlement.ErrBonusRecordNotFound
		}
		return settlement.BonusRecord{}, fmt.Errorf("failed to get bonus record: %w", err)
	}

	return r, nil
}

func (repo *bonusRepository) GetByWorkerAndPeriod(ctx context.Context, workerID string, period settlement.Period) (settlement.BonusRecord, error) {
	q := GetQuerier(ctx, repo.db)

	r, err := scanBonus(q.QueryRow(ctx,
		`SELECT `+bonusColumns+` FROM bonus_records WHERE worker_id = $1 AND period_start = $2 AND period_end = $3`,
		workerID, period.Start, period.End))
	if err != nil {
		if err == pgx.ErrNoRows {
			return settlement.BonusRecord{}, settlement.ErrBonusRecordNotFound
		}
		return settlement.BonusRecord{}, fmt.Errorf("failed to get bonus record: %w", err)
	}

	return r, nil
}

func (repo *bonusRepository) ListByPeriod(ctx context.Context, period settlement.Period) ([]settlement.BonusRecord, error) {
	q := GetQuerier(ctx, repo.db)

	query := `SELECT ` + bonusColumns + `
		FROM bonus_records
		WHERE period_start = $1 AND period_end = $2
		ORDER BY worker_id`

	rows, err := q.Query(ctx, query, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus records: %w", err)
	}
	defer rows.Close()

	var records []settlement.BonusRecord
	for rows.Next() {
		r, err := scanBonus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus record: %w", err)
		}
		records = append(records, r)
	}

	return records, nil
}

func (repo *bonusRepository) MarkFinalized(ctx context.Context, ids []string, at time.Time) error {
	q := GetQuerier(ctx, repo.db)

	_, err := q.Exec(ctx,
		`UPDATE bonus_records SET is_finalized = true, updated_at = $2 WHERE id = ANY($1)`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("failed to mark bonus records finalized: %w", err)
	}

	return nil
}

type historyRepository struct {
	db *database.DB
}

func NewHistoryRepository(db *database.DB) settlement.HistoryRepository {
	return &historyRepository{db: db}
}

func (repo *historyRepository) Create(ctx context.Context, r settlement.HistoryRecord) (settlement.HistoryRecord, error) {
	q := GetQuerier(ctx, repo.db)

	entries, err := json.Marshal(r.Entries)
	if err != nil {
		return settlement.HistoryRecord{}, fmt.Errorf("failed to encode history entries: %w", err)
	}

	query := `
		INSERT INTO settlement_history (type, period_start, period_end, entries, total_gross, total_net, total_deposits, total_advances)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query,
		string(r.Type), r.PeriodStart, r.PeriodEnd, entries,
		r.TotalGross, r.TotalNet, r.TotalDeposits, r.TotalAdvances,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return settlement.HistoryRecord{}, fmt.Errorf("failed to create settlement history: %w", err)
	}

	return r, nil
}

func (repo *historyRepository) GetByID(ctx context.Context, id string) (settlement.HistoryRecord, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT id, type, period_start, period_end, entries, total_gross, total_net, total_deposits, total_advances, created_at
		FROM settlement_history
		WHERE id = $1
	`

	var r settlement.HistoryRecord
	var typ string
	var entries []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&r.ID, &typ, &r.PeriodStart, &r.PeriodEnd, &entries,
		&r.TotalGross, &r.TotalNet, &r.TotalDeposits, &r.TotalAdvances, &r.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settlement.HistoryRecord{}, settlement.ErrHistoryNotFound
		}
		return settlement.HistoryRecord{}, fmt.Errorf("failed to get settlement history: %w", err)
	}
	r.Type = settlement.SettlementType(typ)
	if err := json.Unmarshal(entries, &r.Entries); err != nil {
		return settlement.HistoryRecord{}, fmt.Errorf("failed to decode history entries: %w", err)
	}

	return r, nil
}

func (repo *historyRepository) List(ctx context.Context, filter settlement.HistoryFilter) ([]settlement.HistoryRecord, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT id, type, period_start, period_end, entries, total_gross, total_net, total_deposits, total_advances, created_at
		FROM settlement_history
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND period_start >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND period_start <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement history: %w", err)
	}
	defer rows.Close()

	var records []settlement.HistoryRecord
	for rows.Next() {
		var r settlement.HistoryRecord
		var typ string
		var entries []byte
		if err := rows.Scan(
			&r.ID, &typ, &r.PeriodStart, &r.PeriodEnd, &entries,
			&r.TotalGross, &r.TotalNet, &r.TotalDeposits, &r.TotalAdvances, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement history: %w", err)
		}
		r.Type = settlement.SettlementType(typ)
		if err := json.Unmarshal(entries, &r.Entries); err != nil {
			return nil, fmt.Errorf("failed to decode history entries: %w", err)
		}
		records = append(records, r)
	}

	return records, nil
}

// Delete removes only the snapshot. The ledger transactions the finalize
// posted are immutable and stay in effect.
func (repo *historyRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, repo.db)

	tag, err := q.Exec(ctx, `DELETE FROM settlement_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete settlement history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return settlement.ErrHistoryNotFound
	}

	return nil
}
