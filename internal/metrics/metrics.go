// Package metrics exposes the prometheus endpoint and the shared request
// instrumentation.
package metrics

import (
	"fmt"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"resty.dev/v3"
)

var requestLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "echoes_request_latency",
		Help:    "Histogram of backend request latency in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	},
	[]string{"method", "path", "status_code"},
)

// LatencyMiddleware observes every backend response into the latency
// histogram. Installed on the whisper client as a response middleware.
func LatencyMiddleware(_ *resty.Client, response *resty.Response) error {
	reqURL, err := url.Parse(response.Request.URL)
	if err != nil {
		return err
	}

	requestLatency.WithLabelValues(
		response.Request.Method,
		reqURL.Path,
		fmt.Sprintf("%d", response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}
