package prometheus

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCatalogOperation("billboard", "create", "ok")
		m.RecordAuthError("invalid_token")
		m.RecordEventPublished("billboard", nil)
		m.TrackDBOperation("query")(time.Now())
	})
}

func TestRecordCatalogOperation(t *testing.T) {
	m := InitMetrics(prometheus.NewRegistry(), "store_admin")

	m.RecordCatalogOperation("product", "delete", "conflict")
	m.RecordCatalogOperation("product", "delete", "conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogOperationsCounter.WithLabelValues("product", "delete", "conflict")))
}

func TestRecordEventPublishedOutcome(t *testing.T) {
	m := InitMetrics(prometheus.NewRegistry(), "store_admin")

	m.RecordEventPublished("size", nil)
	m.RecordEventPublished("size", errors.New("broker down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublishedCounter.WithLabelValues("size", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublishedCounter.WithLabelValues("size", "error")))
}

func TestMiddlewareRecordsStatusOfHandlerErrors(t *testing.T) {
	m := InitMetrics(prometheus.NewRegistry(), "store_admin")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "418")))
}
