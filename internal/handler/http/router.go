package http

import (
	"log/slog"
	"os"

	"github.com/crewpay/crewpay-backend-go/internal/config"
	"github.com/crewpay/crewpay-backend-go/internal/handler/http/middleware"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth       AuthHandler
	Worker     WorkerHandler
	Ledger     LedgerHandler
	Attendance AttendanceHandler
	Holiday    HolidayHandler
	Bonus      BonusHandler
	Settlement SettlementHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crewpay"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired())

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.Post("/", h.Worker.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Worker.Get)
					r.Put("/", h.Worker.Update)
					r.Delete("/", h.Worker.Deactivate)
				})
			})

			r.Route("/workers/{workerID}/ledger", func(r chi.Router) {
				r.Post("/advances", h.Ledger.GiveAdvance)
				r.Post("/repayments", h.Ledger.RecordRepayment)
				r.Post("/deposits", h.Ledger.RecordDeposit)
				r.Get("/transactions", h.Ledger.GetHistory)
				r.Get("/balance", h.Ledger.GetBalance)
				r.Get("/reconciliation", h.Ledger.Reconcile)
			})

			r.Route("/workers/{workerID}/attendance", func(r chi.Router) {
				r.Put("/", h.Attendance.Upsert)
			})
			r.Get("/attendance/aggregate", h.Attendance.Aggregate)

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Put("/", h.Holiday.Upsert)
				r.Delete("/{date}", h.Holiday.Delete)
			})

			r.Route("/bonuses", func(r chi.Router) {
				r.Get("/", h.Bonus.ListRecords)
				r.Post("/compute", h.Bonus.ComputeDrafts)
				r.Post("/generate", h.Bonus.GenerateRecords)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/extra-bonus", h.Bonus.AddExtraBonus)
					r.Post("/employee-deposit", h.Bonus.AddEmployeeDeposit)
					r.Post("/mark-paid", h.Bonus.MarkPaid)
				})
			})

			r.Route("/settlements", func(r chi.Router) {
				r.Post("/salary/compute", h.Settlement.ComputeSalaryDrafts)
				r.Post("/validate", h.Settlement.ValidateFinalize)
				r.Post("/finalize", h.Settlement.Finalize)
				r.Route("/history", func(r chi.Router) {
					r.Get("/", h.Settlement.ListHistory)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Settlement.GetHistory)
						r.Delete("/", h.Settlement.DeleteHistory)
					})
				})
			})
		})
	})
	return r
}
