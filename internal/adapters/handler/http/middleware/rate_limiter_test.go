package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	router := gin.New()
	router.Use(RateLimiter(rdb, RateLimitPolicy{Scope: "api", Limit: limit, Window: time.Minute}))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	return router, mr
}

func doPing(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("Allow requests under limit", func(t *testing.T) {
		router, _ := setupLimitedRouter(t, 3)

		for i := 0; i < 3; i++ {
			w := doPing(router, "10.0.0.1")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Block requests over limit", func(t *testing.T) {
		router, _ := setupLimitedRouter(t, 2)

		doPing(router, "10.0.0.2")
		doPing(router, "10.0.0.2")
		w := doPing(router, "10.0.0.2")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Contains(t, w.Body.String(), "too many requests")
	})

	t.Run("Clients are counted separately", func(t *testing.T) {
		router, _ := setupLimitedRouter(t, 1)

		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.3").Code)
		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.4").Code)
		assert.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.3").Code)
	})

	t.Run("Window expiry resets the counter", func(t *testing.T) {
		router, mr := setupLimitedRouter(t, 1)

		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.5").Code)
		assert.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.5").Code)

		mr.FastForward(61 * time.Second)

		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.5").Code)
	})

	t.Run("Redis outage lets requests through", func(t *testing.T) {
		router, mr := setupLimitedRouter(t, 1)
		mr.Close()

		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.6").Code)
		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.6").Code)
	})

	t.Run("Scopes keep separate budgets", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		router := gin.New()
		read := router.Group("", RateLimiter(rdb, RateLimitPolicy{Scope: "api", Limit: 5, Window: time.Minute}))
		read.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		write := router.Group("", RateLimiter(rdb, RateLimitPolicy{Scope: "ingest", Limit: 1, Window: time.Minute}))
		write.POST("/samples", func(c *gin.Context) { c.Status(http.StatusCreated) })

		postSample := func() int {
			req, _ := http.NewRequest("POST", "/samples", nil)
			req.RemoteAddr = "10.0.0.7:12345"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusCreated, postSample())
		assert.Equal(t, http.StatusTooManyRequests, postSample())
		assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.7").Code)
		assert.True(t, mr.Exists("rate_limit:ingest:10.0.0.7"))
		assert.True(t, mr.Exists("rate_limit:api:10.0.0.7"))
	})

	t.Run("Counter key expires with the window", func(t *testing.T) {
		router, mr := setupLimitedRouter(t, 3)

		doPing(router, "10.0.0.8")

		assert.Equal(t, time.Minute, mr.TTL("rate_limit:api:10.0.0.8"))
	})
}
