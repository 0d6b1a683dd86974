package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert relies on the (worker_id, date) unique constraint: a conflicting
// write replaces the stored entry instead of creating a duplicate.
func (r *attendanceRepository) Upsert(ctx context.Context, entry attendance.Entry) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_entries (worker_id, date, status, hours_worked, total_pay, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (worker_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			hours_worked = EXCLUDED.hours_worked,
			total_pay = EXCLUDED.total_pay,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.WorkerID, entry.Date, string(entry.Status), entry.HoursWorked, entry.TotalPay, entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return attendance.Entry{}, fmt.Errorf("failed to upsert attendance entry: %w", err)
	}

	return entry, nil
}

func (r *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, date, status, hours_worked, total_pay, notes, created_at, updated_at
		FROM attendance_entries
		WHERE worker_id = $1 AND date = $2
	`

	var e attendance.Entry
	var status string
	err := q.QueryRow(ctx, query, workerID, date).Scan(
		&e.ID, &e.WorkerID, &e.Date, &status, &e.HoursWorked, &e.TotalPay, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Entry{}, attendance.ErrEntryNotFound
		}
		return attendance.Entry{}, fmt.Errorf("failed to get attendance entry: %w", err)
	}
	e.Status = attendance.Status(status)

	return e, nil
}

func (r *attendanceRepository) ListByPeriod(ctx context.Context, start, end time.Time, workerID *string) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, date, status, hours_worked, total_pay, notes, created_at, updated_at
		FROM attendance_entries
		WHERE date >= $1 AND date <= $2
	`
	args := []interface{}{start, end}
	if workerID != nil {
		query += " AND worker_id = $3"
		args = append(args, *workerID)
	}
	query += " ORDER BY worker_id, date"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		var e attendance.Entry
		var status string
		if err := rows.Scan(
			&e.ID, &e.WorkerID, &e.Date, &status, &e.HoursWorked, &e.TotalPay, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		e.Status = attendance.Status(status)
		entries = append(entries, e)
	}

	return entries, nil
}
