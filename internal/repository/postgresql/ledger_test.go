package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	ledgerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	workerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(db.Close)
	return db
}

func createTestWorker(t *testing.T, db *database.DB) string {
	t.Helper()
	repo := NewWorkerRepository(db)
	w, err := repo.Create(context.Background(), workerDomain.Worker{
		Name:               fmt.Sprintf("worker-%d", time.Now().UnixNano()),
		HourlyRate:         decimal.NewFromInt(100),
		StandardDailyHours: decimal.NewFromInt(8),
		IsActive:           true,
	})
	require.NoError(t, err)
	return w.ID
}

func TestLedgerRepository_AppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	workerID := createTestWorker(t, db)

	ledgerRepo := NewLedgerRepository(db)
	workerRepo := NewWorkerRepository(db)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	advance, err := ledgerRepo.Append(ctx, workerID, ledgerDomain.KindAdvance, decimal.NewFromInt(1000), date, nil)
	require.NoError(t, err)
	assert.True(t, advance.BalanceAfter.Equal(decimal.NewFromInt(1000)))

	_, err = ledgerRepo.Append(ctx, workerID, ledgerDomain.KindRepayment, decimal.NewFromInt(400), date, nil)
	require.NoError(t, err)

	// Overdraw must be rejected inside the transaction.
	_, err = ledgerRepo.Append(ctx, workerID, ledgerDomain.KindDeposit, decimal.NewFromInt(601), date, nil)
	assert.ErrorIs(t, err, ledgerDomain.ErrInsufficientBalance)

	history, err := ledgerRepo.GetHistory(ctx, workerID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, ledgerDomain.Fold(history).Equal(decimal.NewFromInt(600)))

	w, err := workerRepo.GetByID(ctx, workerID)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(600)))
}

func TestLedgerRepository_AppendUnknownWorker(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	ledgerRepo := NewLedgerRepository(db)
	_, err := ledgerRepo.Append(ctx, "b2c6f9a0-0000-4000-8000-000000000000",
		ledgerDomain.KindAdvance, decimal.NewFromInt(10), time.Now(), nil)
	assert.ErrorIs(t, err, ledgerDomain.ErrWorkerNotFound)
}
