package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	families, err := Registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok {
			if want != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}

func TestInstrumentLabelsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Instrument())
	router.POST("/livrer/:order_id", func(c *gin.Context) { c.Status(http.StatusSeeOther) })

	labels := map[string]string{"method": "POST", "route": "/livrer/:order_id", "status": "303"}
	before := counterValue(t, "pizzeria_http_requests_total", labels)

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/livrer/"+id, nil))
	}

	assert.Equal(t, before+3, counterValue(t, "pizzeria_http_requests_total", labels))
}

func TestBusinessCounters(t *testing.T) {
	placed := counterValue(t, "pizzeria_orders_placed_total", nil)
	failed := counterValue(t, "pizzeria_orders_failed_total", nil)
	delivered := counterValue(t, "pizzeria_deliveries_confirmed_total", nil)

	RecordOrderPlaced()
	RecordOrderFailed()
	RecordDeliveries(2)
	RecordDeliveries(0)

	assert.Equal(t, placed+1, counterValue(t, "pizzeria_orders_placed_total", nil))
	assert.Equal(t, failed+1, counterValue(t, "pizzeria_orders_failed_total", nil))
	assert.Equal(t, delivered+2, counterValue(t, "pizzeria_deliveries_confirmed_total", nil))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordOrderPlaced()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "pizzeria_orders_placed_total"))
}
