package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decoderOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "decoder",
		Name:      "operations_total",
		Help:      "Count of decoded records by kind.",
	}, []string{"kind", "coin", "network", "status"})
	decoderOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "decoder",
		Name:      "operation_duration_seconds",
		Help:      "Duration of decoding a single record.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"kind", "coin", "network", "status"})
	decoderInputBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "decoder",
		Name:      "input_bytes",
		Help:      "Size of decoded input buffers.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 10), // 64B..16MiB
	}, []string{"kind", "coin", "network"})
)

// Decoder tracks metrics for raw record decoding.
type Decoder struct {
	labels chainLabels
}

// NewDecoder constructs a Decoder collector.
func NewDecoder(coin model.Coin, network model.Network) *Decoder {
	return &Decoder{labels: newChainLabels(coin, network)}
}

// Observe records the outcome, duration and input size of one decode call.
func (m Decoder) Observe(kind string, size int, err error, started time.Time) {
	kind = orUnknown(kind)
	s := status(err)
	decoderOperationsTotal.WithLabelValues(kind, m.labels.coin, m.labels.network, s).Inc()
	decoderOperationDuration.WithLabelValues(kind, m.labels.coin, m.labels.network, s).Observe(time.Since(started).Seconds())
	decoderInputBytes.WithLabelValues(kind, m.labels.coin, m.labels.network).Observe(float64(size))
}
