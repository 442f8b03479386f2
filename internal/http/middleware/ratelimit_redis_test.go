package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

func setupRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RedisRateLimit(limit, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doRequest(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRedisRateLimitBlocksOverLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	SetRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer SetRedisClient(nil)

	r := setupRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if code := doRequest(r); code != http.StatusOK {
			t.Fatalf("request %d: code = %d; want 200", i+1, code)
		}
	}
	if code := doRequest(r); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: code = %d; want 429", code)
	}
}

func TestRedisRateLimitWindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	SetRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer SetRedisClient(nil)

	r := setupRouter(1, time.Minute)

	if code := doRequest(r); code != http.StatusOK {
		t.Fatalf("first request: code = %d; want 200", code)
	}
	if code := doRequest(r); code != http.StatusTooManyRequests {
		t.Fatalf("second request: code = %d; want 429", code)
	}

	mr.FastForward(61 * time.Second)

	if code := doRequest(r); code != http.StatusOK {
		t.Fatalf("request after window: code = %d; want 200", code)
	}
}

func TestRedisRateLimitFailOpen(t *testing.T) {
	// no redis client configured - limiter must pass everything through
	SetRedisClient(nil)

	r := setupRouter(1, time.Minute)

	for i := 0; i < 5; i++ {
		if code := doRequest(r); code != http.StatusOK {
			t.Fatalf("request %d without redis: code = %d; want 200", i+1, code)
		}
	}
}

func TestRedisRateLimitFailOpenOnRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	SetRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer SetRedisClient(nil)

	mr.Close()

	r := setupRouter(1, time.Minute)

	for i := 0; i < 3; i++ {
		if code := doRequest(r); code != http.StatusOK {
			t.Fatalf("request %d with dead redis: code = %d; want 200", i+1, code)
		}
	}
}
