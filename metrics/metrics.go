// Package metrics exposes Prometheus collectors for HTTP traffic, catalog
// queries and the buyer stores.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-api/store"
)

type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	catalogQueries  *prometheus.CounterVec
	cartMutations   prometheus.Counter
	ordersPlaced    prometheus.Counter
	orderStatus     *prometheus.CounterVec
	orderValue      prometheus.Histogram
	sessions        prometheus.Gauge
	streamClients   prometheus.Gauge
}

// New builds a collector on its own registry, including Go runtime metrics.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		catalogQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_catalog_queries_total",
				Help: "Catalog listings served, by listing and service",
			},
			[]string{"listing", "service"},
		),
		cartMutations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Committed cart mutations",
		}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders created from carts",
		}),
		orderStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_order_status_changes_total",
				Help: "Order status changes by target status",
			},
			[]string{"status"},
		),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_order_total_inr",
			Help:    "Order totals including tax",
			Buckets: prometheus.ExponentialBuckets(50, 2, 10),
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_sessions",
			Help: "Buyer sessions held in memory",
		}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_stream_clients",
			Help: "Connected live stream clients",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requests,
		c.requestDuration,
		c.catalogQueries,
		c.cartMutations,
		c.ordersPlaced,
		c.orderStatus,
		c.orderValue,
		c.sessions,
		c.streamClients,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware records request counts and latency per matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.requests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func (c *Collector) CatalogQuery(listing, service string) {
	c.catalogQueries.WithLabelValues(listing, service).Inc()
}

func (c *Collector) SessionOpened() {
	c.sessions.Inc()
}

func (c *Collector) StreamConnected() {
	c.streamClients.Inc()
}

func (c *Collector) StreamClosed() {
	c.streamClients.Dec()
}

// Observe subscribes to one session's cart and orders.
func (c *Collector) Observe(cart *store.Cart, orders *store.Orders) (stop func()) {
	stopCart := cart.Subscribe(func(_, _ store.CartState) {
		c.cartMutations.Inc()
	})
	stopOrders := orders.Subscribe(func(prev, next store.OrdersState) {
		for _, change := range store.Changes(prev, next) {
			if change.From == "" {
				c.ordersPlaced.Inc()
				c.orderValue.Observe(change.Order.Total)
			}
			c.orderStatus.WithLabelValues(string(change.Order.Status)).Inc()
		}
	})
	return func() {
		stopCart()
		stopOrders()
	}
}
