package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quickanswer/internal/models"
)

var (
	resolutionsDesc = prometheus.NewDesc(
		"quickanswer_resolutions_total",
		"Total question resolutions by outcome and channel",
		[]string{"outcome", "channel"},
		nil,
	)

	resolutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quickanswer_resolution_duration_seconds",
			Help:    "Time to resolve one question, including remote calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"outcome"},
	)
)

// OutcomeStore persists resolution outcome counters.
type OutcomeStore interface {
	IncrementOutcome(ctx context.Context, outcome, channel string) error
	GetAllOutcomes(ctx context.Context) ([]models.ResolutionOutcome, error)
}

// OutcomeCollector is a custom Prometheus collector that reads outcome counts
// from the store on each scrape.
type OutcomeCollector struct {
	store  OutcomeStore
	logger *zap.Logger
}

// NewOutcomeCollector creates a collector over store.
func NewOutcomeCollector(store OutcomeStore, logger *zap.Logger) *OutcomeCollector {
	return &OutcomeCollector{store: store, logger: logger}
}

// Describe sends the metric descriptor to the channel.
func (c *OutcomeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- resolutionsDesc
}

// Collect queries the store for all outcome rows and emits them as counters.
func (c *OutcomeCollector) Collect(ch chan<- prometheus.Metric) {
	outcomes, err := c.store.GetAllOutcomes(context.Background())
	if err != nil {
		c.logger.Error("failed to collect resolution metrics", zap.Error(err))
		return
	}
	for _, o := range outcomes {
		ch <- prometheus.MustNewConstMetric(
			resolutionsDesc,
			prometheus.CounterValue,
			float64(o.Count),
			o.Outcome,
			o.Channel,
		)
	}
}

// Recorder provides async outcome recording.
type Recorder struct {
	store  OutcomeStore
	logger *zap.Logger
	wg     sync.WaitGroup
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the collectors and initializes the recorder.
// store may be nil, in which case only in-process metrics are exported.
// Must be called once at startup.
func Init(store OutcomeStore, logger *zap.Logger) {
	recorderOnce.Do(func() {
		prometheus.MustRegister(resolutionDuration)
		if store == nil {
			return
		}
		recorder = &Recorder{store: store, logger: logger}
		prometheus.MustRegister(NewOutcomeCollector(store, logger))
	})
}

// RecordResolution observes the duration and asynchronously persists the outcome.
func RecordResolution(channel, outcome string, elapsed time.Duration) {
	resolutionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if recorder == nil {
		return
	}
	recorder.record(channel, outcome)
}

func (r *Recorder) record(channel, outcome string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.store.IncrementOutcome(context.Background(), outcome, channel); err != nil {
			r.logger.Error("failed to record resolution outcome",
				zap.String("outcome", outcome),
				zap.String("channel", channel),
				zap.Error(err),
			)
		}
	}()
}

// Flush waits for pending outcome writes. Call before closing the store.
func Flush() {
	if recorder == nil {
		return
	}
	recorder.wg.Wait()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
