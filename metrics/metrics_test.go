package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/models"
	"storefront-api/store"
)

func TestObserveStores(t *testing.T) {
	c := New()
	cart := store.NewCart()
	orders := store.NewOrders()
	stop := c.Observe(cart, orders)

	cart.AddItem(models.Product{ID: "a", Price: models.Price{Selling: 100}}, 1)
	cart.Increment("a")
	order := orders.CreateFromCart(cart.Snapshot().Items(), "", nil)
	orders.Cancel(order.ID)
	stop()
	cart.Clear()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.cartMutations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ordersPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.orderStatus.WithLabelValues("PENDING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.orderStatus.WithLabelValues("CANCELLED")))
}

func TestObserveIgnoresSeededOrders(t *testing.T) {
	c := New()
	orders := store.NewOrders()
	defer c.Observe(store.NewCart(), orders)()

	orders.Seed([]models.Order{
		{ID: "order-a", Status: models.StatusDelivered, Total: 802},
		{ID: "order-b", Status: models.StatusPreparing, Total: 225},
	})
	assert.Zero(t, testutil.ToFloat64(c.ordersPlaced))
	assert.Zero(t, testutil.ToFloat64(c.orderStatus.WithLabelValues("DELIVERED")))

	orders.UpdateStatus("order-b", models.StatusReady)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.orderStatus.WithLabelValues("READY")))
	assert.Zero(t, testutil.ToFloat64(c.ordersPlaced))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New()
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(c.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/ping", "200")))

	c.CatalogQuery("service", "FMCG")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_catalog_queries_total{listing="service",service="FMCG"} 1`)
}
