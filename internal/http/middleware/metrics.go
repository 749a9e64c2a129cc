// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the Prometheus collectors. HTTP traffic is labelled by
// method, route template and status; requests that match no route share the
// "unmatched" path label so scanners cannot blow up cardinality. Forwarded
// Glue calls are labelled by operation and envelope variant, both closed sets.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedPath labels requests that did not match a registered route.
const unmatchedPath = "unmatched"

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Status is left out to keep the histogram small.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// GetCrawlers and GetConnections can return large lists.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 5 << 10,
				25 << 10, 100 << 10, 500 << 10,
				1 << 20, 5 << 20,
			},
		},
		[]string{"method", "path"},
	)

	glueEnvelopes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glue_envelopes_total",
			Help: "Total number of response envelopes by Glue operation and variant.",
		},
		[]string{"operation", "variant"},
	)

	// Glue control-plane calls usually take tens to hundreds of milliseconds.
	glueCallLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glue_call_duration_seconds",
			Help:    "Duration of forwarded Glue calls in seconds.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, glueEnvelopes, glueCallLat)
}

// ObserveGlueCall records one forwarded Glue call: its envelope variant and
// how long the call took.
func ObserveGlueCall(operation, variant string, took time.Duration) {
	glueEnvelopes.WithLabelValues(operation, variant).Inc()
	glueCallLat.WithLabelValues(operation).Observe(took.Seconds())
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
// Mount promhttp.Handler() separately, e.g. on /metrics.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		method := c.Request.Method

		httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		// Size is -1 when nothing was written.
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
