package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crewpay/crewpay-backend-go/internal/config"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/jwt"
	"github.com/crewpay/crewpay-backend-go/internal/repository/memory"
	attendanceService "github.com/crewpay/crewpay-backend-go/internal/service/attendance"
	authService "github.com/crewpay/crewpay-backend-go/internal/service/auth"
	bonusService "github.com/crewpay/crewpay-backend-go/internal/service/bonus"
	holidayService "github.com/crewpay/crewpay-backend-go/internal/service/holiday"
	ledgerService "github.com/crewpay/crewpay-backend-go/internal/service/ledger"
	salaryService "github.com/crewpay/crewpay-backend-go/internal/service/salary"
	settlementService "github.com/crewpay/crewpay-backend-go/internal/service/settlement"
	workerService "github.com/crewpay/crewpay-backend-go/internal/service/worker"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	routerTestEmail    = "ops@example.com"
	routerTestPassword = "password123"
	routerTestSecret   = "test-secret-key-for-jwt"
)

// newTestRouter wires the full application on the memory driver, the same
// shape cmd/api builds for STORE_DRIVER=memory.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	workerRepo := memory.NewWorkerRepository()
	ledgerRepo := memory.NewLedgerRepository(workerRepo)
	attendanceRepo := memory.NewAttendanceRepository()
	holidayRepo := memory.NewHolidayRepository()
	bonusRepo := memory.NewBonusRepository()
	historyRepo := memory.NewHistoryRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte(routerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := jwt.NewJWTService(routerTestSecret, "1h", "24h")
	authSvc := authService.NewAuthService(config.AuthConfig{
		AdminEmail:        routerTestEmail,
		AdminPasswordHash: string(hash),
	}, jwtSvc)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workerRepo, holidayRepo)
	handlers := Handlers{
		Auth:       NewAuthHandler(authSvc),
		Worker:     NewWorkerHandler(workerService.NewWorkerService(workerRepo)),
		Ledger:     NewLedgerHandler(ledgerService.NewLedgerService(ledgerRepo, workerRepo)),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Holiday:    NewHolidayHandler(holidayService.NewHolidayService(holidayRepo)),
		Bonus:      NewBonusHandler(bonusService.NewBonusService(bonusRepo, workerRepo, attendanceSvc)),
		Settlement: NewSettlementHandler(
			salaryService.NewSalaryService(workerRepo, attendanceSvc),
			settlementService.NewSettlementService(historyRepo, bonusRepo, ledgerRepo, workerRepo, attendanceSvc),
		),
	}

	cfg := &config.Config{App: config.AppConfig{Env: "test", StoreDriver: "memory", LogLevel: "error"}}
	return NewRouter(cfg, jwtSvc, handlers)
}

func doJSON(t *testing.T, router *chi.Mux, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginAccessToken(t *testing.T, router *chi.Mux) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    routerTestEmail,
		"password": routerTestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	token := resp["data"].(map[string]interface{})["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRouter_LoginInvalidCredentials(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    routerTestEmail,
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp["success"].(bool))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/workers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/workers", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    routerTestEmail,
		"password": routerTestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	refreshToken := resp["data"].(map[string]interface{})["refresh_token"].(string)

	got := doJSON(t, router, http.MethodGet, "/api/v1/workers", refreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, got.Code)
}

func TestRouter_WorkerAndLedgerFlow(t *testing.T) {
	router := newTestRouter(t)
	token := loginAccessToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/workers", token, map[string]any{
		"name":        "Arman",
		"hourly_rate": "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	workerID := created["data"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, workerID)

	w = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/workers/%s/ledger/advances", workerID), token,
		map[string]any{"amount": "1000", "date": "2026-01-05"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/workers/%s/ledger/repayments", workerID), token,
		map[string]any{"amount": "400", "date": "2026-01-10"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/workers/%s/ledger/balance", workerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var balance map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&balance))
	assert.Equal(t, "600", balance["data"].(map[string]interface{})["balance"].(string))

	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/workers/%s/ledger/transactions", workerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
	assert.Len(t, history["data"].([]interface{}), 2)
}

func TestRouter_OverdrawMapsToBadRequest(t *testing.T) {
	router := newTestRouter(t)
	token := loginAccessToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/workers", token, map[string]any{
		"name":        "Budi",
		"hourly_rate": "100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	workerID := created["data"].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/workers/%s/ledger/repayments", workerID), token,
		map[string]any{"amount": "50"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp["success"].(bool))
}

func TestRouter_ValidationMapsToUnprocessable(t *testing.T) {
	router := newTestRouter(t)
	token := loginAccessToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/workers", token, map[string]any{
		"name":        "",
		"hourly_rate": "100",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_UnknownWorkerMapsToNotFound(t *testing.T) {
	router := newTestRouter(t)
	token := loginAccessToken(t, router)

	w := doJSON(t, router, http.MethodGet,
		"/api/v1/workers/b2c6f9a0-0000-4000-8000-000000000000/ledger/balance", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
