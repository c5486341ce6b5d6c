package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/admin/edit-product/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/admin/edit-product/{id}", "418"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/edit-product/"+id, nil))
	}
	after := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/admin/edit-product/{id}", "418"))

	assert.Equal(t, 3.0, after-before)
}

func TestHandlerExposesShopCounters(t *testing.T) {
	OrdersPlaced.Inc()

	rec := httptest.NewRecorder()
	Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_checkout_orders_placed_total")
}
