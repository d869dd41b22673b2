package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-touring-backend/internal/delivery/http/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimitWindow(t *testing.T) {
	rl := NewRateLimiter(nil)
	cfg := ContentRateLimitConfig(time.Minute, 2)
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	count, resetAt := rl.checkInMemory("k", cfg, start)
	assert.Equal(t, 1, count)
	assert.Equal(t, start.Add(time.Minute), resetAt)

	count, _ = rl.checkInMemory("k", cfg, start.Add(30*time.Second))
	assert.Equal(t, 2, count)

	count, _ = rl.checkInMemory("other", cfg, start.Add(30*time.Second))
	assert.Equal(t, 1, count)

	count, resetAt = rl.checkInMemory("k", cfg, start.Add(61*time.Second))
	assert.Equal(t, 1, count)
	assert.Equal(t, start.Add(121*time.Second), resetAt)
}

func TestRateLimiterSweepAndClose(t *testing.T) {
	rl := NewRateLimiter(nil)
	cfg := ContentRateLimitConfig(time.Minute, 2)
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	rl.checkInMemory("old", cfg, start)
	rl.checkInMemory("recent", cfg, start.Add(50*time.Second))

	rl.sweep(start.Add(70 * time.Second))
	_, oldKept := rl.store.Load("old")
	_, recentKept := rl.store.Load("recent")
	assert.False(t, oldKept)
	assert.True(t, recentKept)

	rl.Middleware(cfg)
	rl.Close()
	rl.Close()
	select {
	case <-rl.stop:
	default:
		t.Fatal("stop channel still open after Close")
	}
}

func newRedisLimiter(t *testing.T) (*miniredis.Miniredis, *RateLimiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rl := NewRateLimiter(client)
	t.Cleanup(rl.Close)
	return mr, rl
}

func limitedRouter(rl *RateLimiter, cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Middleware(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestRedisRateLimitCounter(t *testing.T) {
	mr, rl := newRedisLimiter(t)
	cfg := ContentRateLimitConfig(time.Minute, 2)

	count, resetAt, err := rl.checkRedis(context.Background(), "rl:content:k", cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.WithinDuration(t, time.Now().Add(time.Minute), resetAt, 2*time.Second)
	assert.Equal(t, time.Minute, mr.TTL("rl:content:k"))

	count, _, err = rl.checkRedis(context.Background(), "rl:content:k", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRedisRateLimitMiddleware(t *testing.T) {
	mr, rl := newRedisLimiter(t)
	r := limitedRouter(rl, ContentRateLimitConfig(time.Minute, 2))

	assert.Equal(t, http.StatusOK, hit(r).Code)
	rec := hit(r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = hit(r)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// httptest requests come from 192.0.2.1.
	stored, err := mr.Get("rl:content:192.0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "3", stored)
}

func TestRedisRateLimitOutage(t *testing.T) {
	mr, rl := newRedisLimiter(t)
	open := limitedRouter(rl, ContentRateLimitConfig(time.Minute, 2))
	closed := limitedRouter(rl, AdminRateLimitConfig())
	mr.Close()

	assert.Equal(t, http.StatusOK, hit(open).Code, "content routes fall back to memory")
	assert.Equal(t, http.StatusServiceUnavailable, hit(closed).Code, "admin routes fail closed")
}

func TestRequestIDReuse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, response.RequestID(c))
	})

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err)
}

func TestVerifyAdminToken(t *testing.T) {
	const secret = "s3cret"
	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return "Bearer " + token
	}
	exp := time.Now().Add(time.Hour).Unix()

	sub, err := verifyAdminToken(sign(jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "ops", "role": "admin", "exp": exp}), secret)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)

	_, err = verifyAdminToken(sign(jwt.SigningMethodHS512, []byte(secret), jwt.MapClaims{"role": "admin", "exp": exp}), secret)
	assert.Error(t, err)

	_, err = verifyAdminToken(sign(jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"role": "admin", "exp": exp}), "")
	assert.ErrorIs(t, err, errAdminNotConfigured)

	_, err = verifyAdminToken("Basic abc", secret)
	assert.ErrorIs(t, err, errMissingToken)

	_, err = verifyAdminToken(sign(jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"role": "viewer", "exp": exp}), secret)
	assert.ErrorIs(t, err, errNotAdmin)
}
