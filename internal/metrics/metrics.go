// Package metrics exposes gateway and store counters to Prometheus.
package metrics

import (
	"net/http"

	"backoffice/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	gatewayRequests *prometheus.CounterVec
	confirmations   *prometheus.CounterVec
	confirmLatency  *prometheus.HistogramVec
}

// NewCollector uses its own registry so several instances can coexist in tests.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_gateway_requests_total",
			Help: "Requests sent to the remote admin API",
		}, []string{"method", "resource", "outcome"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_confirmations_total",
			Help: "Background confirmations of local mutations",
		}, []string{"kind", "resource", "outcome"}),
		confirmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_confirmation_seconds",
			Help:    "Latency of background confirmations",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
	}

	c.registry.MustRegister(
		c.gatewayRequests,
		c.confirmations,
		c.confirmLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveGateway matches gateway.Observer.
func (c *Collector) ObserveGateway(method, resource string, err error) {
	c.gatewayRequests.WithLabelValues(method, resource, outcome(err)).Inc()
}

// ObserveConfirmation is registered with Stores.OnConfirm.
func (c *Collector) ObserveConfirmation(r store.Result) {
	c.confirmations.WithLabelValues(string(r.Kind), r.Resource, outcome(r.Err)).Inc()
	c.confirmLatency.WithLabelValues(r.Resource).Observe(r.Duration.Seconds())
}

// TrackStores adds one items gauge per store.
func (c *Collector) TrackStores(stores *store.Stores) {
	for _, f := range stores.All() {
		f := f
		c.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "backoffice_store_items",
			Help:        "Items currently held by a resource store",
			ConstLabels: prometheus.Labels{"store": f.Name()},
		}, func() float64 { return float64(f.Len()) }))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
