// Package metrics exposes storefront Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fjod/go_skincare/internal/cart"
)

const namespace = "storefront"

type Metrics struct {
	cartActions    *prometheus.CounterVec
	persistErrors  *prometheus.CounterVec
	searches       *prometheus.CounterVec
	searchResults  *prometheus.HistogramVec
	checkoutEvents *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers the storefront metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		cartActions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_actions_total",
			Help:      "Cart actions dispatched, by action.",
		}, []string{"action"}),
		persistErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_errors_total",
			Help:      "Failed cart storage reads and writes.",
		}, []string{"op"}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Search requests, by kind.",
		}, []string{"kind"}),
		searchResults: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"kind"}),
		checkoutEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_events_total",
			Help:      "Checkout events consumed, by outcome.",
		}, []string{"outcome"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

var _ cart.Recorder = (*Metrics)(nil)

func (m *Metrics) CartAction(action cart.ActionType) {
	m.cartActions.WithLabelValues(string(action)).Inc()
}

func (m *Metrics) PersistError(op string) {
	m.persistErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveSearch(kind string, results int) {
	m.searches.WithLabelValues(kind).Inc()
	m.searchResults.WithLabelValues(kind).Observe(float64(results))
}

func (m *Metrics) CheckoutEvent(outcome string) {
	m.checkoutEvents.WithLabelValues(outcome).Inc()
}

// Middleware records request latency labelled with the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
