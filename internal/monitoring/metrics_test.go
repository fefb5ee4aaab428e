package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fixedCounter int64

func (c fixedCounter) Count(context.Context) (int64, error) { return int64(c), nil }

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int64, error) {
	return 0, errors.New("count todos: connection refused")
}

func TestSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	service := NewService(time.Now().Add(-time.Minute), db, fixedCounter(10), fixedCounter(2))
	snap := service.Snapshot(context.Background())

	require.Equal(t, "ok", snap.DBStatus)
	require.EqualValues(t, 10, snap.TodosTotal)
	require.EqualValues(t, 2, snap.UsersTotal)
	require.GreaterOrEqual(t, snap.UptimeSeconds, int64(59))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllTextReportsDBFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(sqlmock.ErrCancelled)

	text := NewService(time.Now(), db, fixedCounter(3), fixedCounter(1)).AllText(context.Background())

	require.Contains(t, text, "DB: error:")
	require.Contains(t, text, "Todos total: 3")
	require.Contains(t, text, "Users total: 1")
}

func TestCountFailuresAreReported(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewService(time.Now(), db, failingCounter{}, fixedCounter(1))

	text := service.ContentText(context.Background())
	require.Contains(t, text, "Todos total: error: count todos: connection refused")
	require.Contains(t, text, "Users total: 1")

	snap := service.Snapshot(context.Background())
	require.Equal(t, []string{"todos: count todos: connection refused"}, snap.CountErrors)
	require.EqualValues(t, 1, snap.UsersTotal)
}

func TestRequestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestMetricsMiddleware())
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	_, totalBefore, failedBefore := getHTTPStats()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	active, totalAfter, failedAfter := getHTTPStats()

	require.EqualValues(t, 0, active)
	require.Equal(t, totalBefore+1, totalAfter)
	require.Equal(t, failedBefore+1, failedAfter)
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512 B", formatBytes(512))
	require.True(t, strings.HasPrefix(formatBytes(3*1024*1024), "3.00 MB"))
}
