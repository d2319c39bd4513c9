package tracking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "visitors.db"), "salt", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func at(s *Store, ts time.Time) {
	s.now = func() time.Time { return ts }
}

func TestRecordHashesIP(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "203.0.113.9", "curl", "/"))

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, logging.HashIP("203.0.113.9", "salt"), recent[0].HashedIP)
	assert.NotContains(t, recent[0].HashedIP, "203.0.113.9")
	assert.Equal(t, "curl", recent[0].UserAgent)
	assert.Equal(t, "/", recent[0].Path)
}

func TestStats(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Date(2025, time.November, 5, 15, 0, 0, 0, time.UTC)

	at(s, now.AddDate(0, 0, -10))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/"))
	at(s, now.AddDate(0, 0, -3))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/"))
	at(s, now.Add(-2*time.Hour))
	require.NoError(t, s.Record(ctx, "2.2.2.2", "ua", "/projects"))
	require.NoError(t, s.Record(ctx, "3.3.3.3", "ua", "/"))

	at(s, now)
	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.Equal(t, []PathStat{{Path: "/", Views: 3}, {Path: "/projects", Views: 1}}, stats.TopPaths)
	assert.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, now.Add(-2*time.Hour), stats.RecentVisitors[0].Timestamp)
}

func TestStatsEmpty(t *testing.T) {
	s := openStore(t)
	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVisitors)
	assert.NotNil(t, stats.TopPaths)
	assert.NotNil(t, stats.RecentVisitors)
}

func TestCleanup(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)

	at(s, now.AddDate(-1, -1, 0))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/"))
	at(s, now.AddDate(0, -1, 0))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/"))

	at(s, now)
	n, err := s.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestMiddleware(t *testing.T) {
	s := openStore(t)

	r := gin.New()
	r.Use(s.Middleware())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/", ok)
	r.GET("/api/stats", ok)
	r.GET("/static/app.css", ok)
	r.GET("/live", ok)
	r.GET("/privacy", ok)
	r.POST("/", ok)

	send := func(method, path string, dnt bool) {
		req := httptest.NewRequest(method, path, nil)
		if dnt {
			req.Header.Set("DNT", "1")
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	send(http.MethodGet, "/", false)
	send(http.MethodGet, "/", true)
	send(http.MethodGet, "/api/stats", false)
	send(http.MethodGet, "/static/app.css", false)
	send(http.MethodGet, "/live", false)
	send(http.MethodGet, "/privacy", false)
	send(http.MethodPost, "/", false)

	s.wg.Wait()
	recent, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "/", recent[0].Path)
}

func TestTopPathsLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	for i := 0; i < topPathLimit+3; i++ {
		require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", fmt.Sprintf("/p%02d", i)))
	}
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/p12"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.TopPaths, topPathLimit)
	assert.Equal(t, PathStat{Path: "/p12", Views: 2}, stats.TopPaths[0])
	assert.Equal(t, "/p00", stats.TopPaths[1].Path)
}
