package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipes-api/backend/config"
	"github.com/pageza/recipes-api/backend/internal/middleware"
	"github.com/pageza/recipes-api/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:         "localhost",
		ServerPort:         "8080",
		DBDriver:           config.DriverSQLite,
		Timezone:           "UTC",
		RateLimitPerMinute: 120,
	}
}

func TestNew(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	server, err := New(testConfig(), db, nil)
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.Equal(t, "localhost:8080", server.http.Addr)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestNewInvalidTimezone(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	cfg := testConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	_, err := New(cfg, db, nil)
	assert.Error(t, err)
}

func TestServerRoutes(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	server, err := New(testConfig(), db, nil)
	require.NoError(t, err)

	body := `{"title":"Tomato Soup","making_time":"15 min","serves":"3","ingredients":"tomato, salt","cost":30}`
	req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/recipes/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServerRateLimited(t *testing.T) {
	redisURL := testhelpers.StartRedis(t)
	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { client.Close() })

	db := testhelpers.SetupSQLite(t)
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1

	server, err := New(cfg, db, client)
	require.NoError(t, err)

	// Three requests span at most two windows, so at least one is rejected
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)

	// Liveness is not limited
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartAndShutdown(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	cfg := testConfig()
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = "0"

	server, err := New(cfg, db, nil)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	// Give ListenAndServe a moment before shutting down
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
