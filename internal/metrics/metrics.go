// Package metrics provides Prometheus instrumentation for betting and settlement.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BetsPlaced counts accepted bets by side.
	BetsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_bets_placed_total",
		Help: "Total number of bets placed",
	}, []string{"bet_type"})

	// TokensWagered sums the tokens debited by placed bets.
	TokensWagered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "placement_tokens_wagered_total",
		Help: "Total tokens wagered",
	})

	// BetsSettled counts archived bets by outcome.
	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_bets_settled_total",
		Help: "Total number of bets settled",
	}, []string{"status"})

	SettlementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "placement_settlement_failures_total",
		Help: "Bets whose settlement failed during a fan-out",
	})

	// TxRetries counts transactions retried after a serialization failure or deadlock.
	TxRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_tx_retries_total",
		Help: "Transactions retried after a conflict",
	}, []string{"op"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placement_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveBetPlaced records one accepted bet.
func ObserveBetPlaced(betType string, amount int64) {
	BetsPlaced.WithLabelValues(betType).Inc()
	TokensWagered.Add(float64(amount))
}

// ObserveSettled records one archived bet.
func ObserveSettled(status string) {
	BetsSettled.WithLabelValues(status).Inc()
}

// RetryHook returns a transaction retry callback that counts retries for op.
func RetryHook(op string) func(attempt int, err error) {
	c := TxRetries.WithLabelValues(op)
	return func(int, error) {
		c.Inc()
	}
}

// Middleware records request count and latency. The path label is the
// route template so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
