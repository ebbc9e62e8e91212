package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_http_requests_total",
			Help: "Total number of HTTP requests processed by the market service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "market_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	listingQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_listing_queries_total",
			Help: "Total number of listing queries, by browse tab.",
		},
		[]string{"tab"},
	)
	listingsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_listings_created_total",
			Help: "Total number of listings created, by type.",
		},
		[]string{"type"},
	)
	offerResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_offer_responses_total",
			Help: "Total number of offer decisions.",
		},
		[]string{"decision"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "market_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		listingQueriesTotal,
		listingsCreatedTotal,
		offerResponsesTotal,
		amqpPublishErrorsTotal,
	)
}

// HTTPMetricsMiddleware records request counts and latencies per route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncListingQuery(tab string) {
	listingQueriesTotal.WithLabelValues(tab).Inc()
}

func IncListingCreated(listingType string) {
	listingsCreatedTotal.WithLabelValues(listingType).Inc()
}

func IncOfferResponse(decision string) {
	offerResponsesTotal.WithLabelValues(decision).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
