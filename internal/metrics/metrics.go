package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers Prometheus metrics for the HTTP surface and the outbound
// Twitch API calls.
type Collector struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpLatency   prometheus.Histogram
	twitchCalls   *prometheus.CounterVec
	twitchLatency prometheus.Histogram
	tokenRefresh  prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamhound_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "streamhound_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		twitchCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamhound_twitch_calls_total",
			Help: "Outbound Twitch API calls by endpoint and status code.",
		}, []string{"endpoint", "status_code"}),
		twitchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "streamhound_twitch_call_duration_seconds",
			Help:    "Outbound Twitch API call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		tokenRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamhound_token_refresh_total",
			Help: "Twitch app token exchange calls.",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.twitchCalls,
		c.twitchLatency,
		c.tokenRefresh,
	)

	return c
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordTwitchCall records one outbound Twitch API request. A status code of
// zero means the request failed before a response arrived.
func (c *Collector) RecordTwitchCall(endpoint string, statusCode int, duration time.Duration) {
	c.twitchCalls.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	c.twitchLatency.Observe(duration.Seconds())
}

// RecordTokenRefresh records one app token exchange.
func (c *Collector) RecordTokenRefresh() {
	c.tokenRefresh.Inc()
}

// Handler exposes the collected metrics for scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
