package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHashIP(t *testing.T) {
	a := HashIP("10.0.0.1", "salt")
	assert.Len(t, a, 16)
	assert.Equal(t, a, HashIP("10.0.0.1", "salt"))
	assert.NotEqual(t, a, HashIP("10.0.0.1", "pepper"))
	assert.NotContains(t, a, "10.0.0.1")
}

func TestNew(t *testing.T) {
	logger, err := New("release", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = New("release", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestGinLoggerWritesRequestLine(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), GinLogger(zap.New(core), "salt"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	id := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestGinRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(GinRecovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.Len())
}
