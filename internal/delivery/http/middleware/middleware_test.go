package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storekit-backend/config"
	"storekit-backend/internal/domain"
	"storekit-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func signedRequest(t *testing.T, storeID, role string) *http.Request {
	t.Helper()
	utils.SetSecret("middleware-secret")
	token, err := utils.GenerateJWT("u1", "owner@shop.in", storeID, role, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/shipping/config", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthMiddleware_SetsMerchant(t *testing.T) {
	var got *domain.Merchant
	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = MerchantFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, "store-1", domain.RoleOwner))

	require.NotNil(t, got)
	assert.Equal(t, "store-1", got.StoreID)
	assert.Equal(t, domain.RoleOwner, got.Role)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	AuthMiddleware(okHandler()).ServeHTTP(rec, signedRequest(t, "", domain.RoleOwner))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStoreAdminMiddleware(t *testing.T) {
	h := AuthMiddleware(StoreAdminMiddleware(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, "store-1", domain.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, "store-1", "staff"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_002")

	rec = httptest.NewRecorder()
	StoreAdminMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCronSecretMiddleware(t *testing.T) {
	h := CronSecretMiddleware("s3cret")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cron/abandoned-carts", nil)
	req.Header.Set(CronSecretHeader, "s3cret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req.Header.Set(CronSecretHeader, "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// empty configured secret disables the route
	req.Header.Set(CronSecretHeader, "")
	rec = httptest.NewRecorder()
	CronSecretMiddleware("")(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	h := NewCORSMiddleware(&config.Config{AllowedOrigin: "https://a.shop, https://b.shop"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://b.shop")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://b.shop", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), CronSecretHeader)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.shop")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 2, time.Hour, time.Minute)
	defer rl.Shutdown()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := rl.Middleware()(okHandler())
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.clients)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1:5555", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getClientIP(req))
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestLogger(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
}
