package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/crewpay/crewpay-backend-go/internal/config"
	attendanceDomain "github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	holidayDomain "github.com/crewpay/crewpay-backend-go/internal/domain/holiday"
	ledgerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	settlementDomain "github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	workerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	appHTTP "github.com/crewpay/crewpay-backend-go/internal/handler/http"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/database"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/jwt"
	"github.com/crewpay/crewpay-backend-go/internal/repository/memory"
	"github.com/crewpay/crewpay-backend-go/internal/repository/postgresql"
	attendanceService "github.com/crewpay/crewpay-backend-go/internal/service/attendance"
	serviceAuth "github.com/crewpay/crewpay-backend-go/internal/service/auth"
	bonusService "github.com/crewpay/crewpay-backend-go/internal/service/bonus"
	holidayService "github.com/crewpay/crewpay-backend-go/internal/service/holiday"
	ledgerService "github.com/crewpay/crewpay-backend-go/internal/service/ledger"
	salaryService "github.com/crewpay/crewpay-backend-go/internal/service/salary"
	settlementService "github.com/crewpay/crewpay-backend-go/internal/service/settlement"
	workerService "github.com/crewpay/crewpay-backend-go/internal/service/worker"
)

type repositories struct {
	worker     workerDomain.WorkerRepository
	ledger     ledgerDomain.LedgerRepository
	attendance attendanceDomain.AttendanceRepository
	holiday    holidayDomain.HolidayRepository
	bonus      settlementDomain.BonusRepository
	history    settlementDomain.HistoryRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var repos repositories
	switch cfg.App.StoreDriver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		if err := db.Migrate(context.Background()); err != nil {
			log.Fatal("Error running migrations: ", err)
		}
		repos = repositories{
			worker:     postgresql.NewWorkerRepository(db),
			ledger:     postgresql.NewLedgerRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			holiday:    postgresql.NewHolidayRepository(db),
			bonus:      postgresql.NewBonusRepository(db),
			history:    postgresql.NewHistoryRepository(db),
		}
	case "memory":
		workerRepo := memory.NewWorkerRepository()
		repos = repositories{
			worker:     workerRepo,
			ledger:     memory.NewLedgerRepository(workerRepo),
			attendance: memory.NewAttendanceRepository(),
			holiday:    memory.NewHolidayRepository(),
			bonus:      memory.NewBonusRepository(),
			history:    memory.NewHistoryRepository(),
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := serviceAuth.NewAuthService(cfg.Auth, JWTService)
	workerSvc := workerService.NewWorkerService(repos.worker)
	ledgerSvc := ledgerService.NewLedgerService(repos.ledger, repos.worker)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.worker, repos.holiday)
	holidaySvc := holidayService.NewHolidayService(repos.holiday)
	bonusSvc := bonusService.NewBonusService(repos.bonus, repos.worker, attendanceSvc)
	salarySvc := salaryService.NewSalaryService(repos.worker, attendanceSvc)
	settlementSvc := settlementService.NewSettlementService(repos.history, repos.bonus, repos.ledger, repos.worker, attendanceSvc)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Ledger:     appHTTP.NewLedgerHandler(ledgerSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Bonus:      appHTTP.NewBonusHandler(bonusSvc),
		Settlement: appHTTP.NewSettlementHandler(salarySvc, settlementSvc),
	}

	router := appHTTP.NewRouter(cfg, JWTService, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
