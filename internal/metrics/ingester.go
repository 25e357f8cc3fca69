package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ingesterSubsystem = "raw_ingester"

var (
	ingesterFetchHeightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "fetch_heights_total",
		Help:      "Count of attempts to compute the next heights to ingest.",
	}, []string{"coin", "network", "status"})

	ingesterFetchHeightsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "fetch_heights_duration_seconds",
		Help:      "Duration of computing the next heights to ingest.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "process_height_duration_seconds",
		Help:      "Duration of fetching and decoding a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterWriteBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "write_batch_total",
		Help:      "Count of block batches written to storage.",
	}, []string{"coin", "network", "status"})

	ingesterWriteBatchBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: ingesterSubsystem,
		Name:      "write_batch_blocks",
		Help:      "Number of blocks per written batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"coin", "network"})
)

// RawIngester tracks metrics for the raw block ingestion pipeline.
type RawIngester struct {
	labels chainLabels
}

// NewRawIngester constructs a RawIngester collector.
func NewRawIngester(coin model.Coin, network model.Network) *RawIngester {
	return &RawIngester{labels: newChainLabels(coin, network)}
}

// ObserveFetchHeights records a height-selection attempt.
func (m RawIngester) ObserveFetchHeights(err error, started time.Time) {
	s := status(err)
	ingesterFetchHeightsTotal.WithLabelValues(m.labels.coin, m.labels.network, s).Inc()
	ingesterFetchHeightsDuration.WithLabelValues(m.labels.coin, m.labels.network, s).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a batch of heights.
func (m RawIngester) ObserveProcessBatch(err error, heights int, started time.Time) {
	s := status(err)
	ingesterProcessBatchTotal.WithLabelValues(m.labels.coin, m.labels.network, s).Inc()
	ingesterProcessBatchDuration.WithLabelValues(m.labels.coin, m.labels.network, s).
		Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(m.labels.coin, m.labels.network).Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height.
func (m RawIngester) ObserveProcessHeight(err error, _ uint64, started time.Time) {
	ingesterProcessHeightDuration.WithLabelValues(m.labels.coin, m.labels.network, status(err)).
		Observe(time.Since(started).Seconds())
}

// ObserveWriteBatch records a storage flush of blocks.
func (m RawIngester) ObserveWriteBatch(err error, blocks int) {
	ingesterWriteBatchTotal.WithLabelValues(m.labels.coin, m.labels.network, status(err)).Inc()
	ingesterWriteBatchBlocks.WithLabelValues(m.labels.coin, m.labels.network).Observe(float64(blocks))
}
