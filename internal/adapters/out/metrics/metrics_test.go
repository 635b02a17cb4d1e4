package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	return m.Called(ctx, events).Error(0)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Middleware(t *testing.T) {
	t.Run("records requests under the route template", func(t *testing.T) {
		m := metrics.New()
		e := echo.New()
		e.Use(m.Middleware())
		e.GET("/orders/:id", func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})

		for range 2 {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+kernel.NewUUID().String(), nil))
			require.Equal(t, http.StatusNoContent, rec.Code)
		}

		assert.Contains(t, scrape(t, m),
			`fulfillment_http_requests_total{method="GET",path="/orders/:id",status="204"} 2`)
	})

	t.Run("handler errors are rendered before counting", func(t *testing.T) {
		m := metrics.New()
		e := echo.New()
		e.Use(m.Middleware())
		e.GET("/boom", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusTeapot, "short and stout")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Contains(t, scrape(t, m), `path="/boom",status="418"} 1`)
	})
}

func TestMetrics_SetOrdersByStatus(t *testing.T) {
	m := metrics.New()

	m.SetOrdersByStatus([]metrics.StatusCount{
		{Region: "NSU", Status: "pending", Count: 4},
		{Region: "SSU", Status: "shipped", Count: 1},
	})
	m.SetOrdersByStatus([]metrics.StatusCount{
		{Region: "NSU", Status: "pending", Count: 3},
	})

	body := scrape(t, m)
	assert.Contains(t, body, `fulfillment_orders_by_status{region="NSU",status="pending"} 3`)
	assert.NotContains(t, body, `region="SSU"`)
	count, err := testutil.GatherAndCount(m.Registry(), "fulfillment_orders_by_status")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountingPublisher_Publish(t *testing.T) {
	events := []order.Event{
		{Name: order.EventStatusChanged, OrderID: kernel.NewUUID()},
		{Name: order.EventStatusChanged, OrderID: kernel.NewUUID()},
		{Name: order.EventCourierAssigned, OrderID: kernel.NewUUID()},
	}

	t.Run("counts delivered events by type", func(t *testing.T) {
		m := metrics.New()
		next := new(MockEventPublisher)
		next.On("Publish", mock.Anything, events).Return(nil).Once()

		require.NoError(t, metrics.NewCountingPublisher(next, m).Publish(t.Context(), events...))

		body := scrape(t, m)
		assert.Contains(t, body, `fulfillment_order_events_published_total{type="order.status_changed"} 2`)
		assert.Contains(t, body, `fulfillment_order_events_published_total{type="order.courier_assigned"} 1`)
		next.AssertExpectations(t)
	})

	t.Run("counts failures separately and returns the error", func(t *testing.T) {
		m := metrics.New()
		next := new(MockEventPublisher)
		next.On("Publish", mock.Anything, events).Return(errors.New("broker down")).Once()

		err := metrics.NewCountingPublisher(next, m).Publish(t.Context(), events...)

		require.Error(t, err)
		body := scrape(t, m)
		assert.Contains(t, body, `fulfillment_order_event_publish_failures_total{type="order.status_changed"} 2`)
		assert.NotContains(t, body, `fulfillment_order_events_published_total{`)
	})
}
