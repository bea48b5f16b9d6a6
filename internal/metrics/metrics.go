package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wateval_runs_total",
		Help: "Evaluation runs by outcome",
	}, []string{"outcome"})

	ReferenceLinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wateval_reference_lines_total",
		Help: "Reference lines extracted from test corpora",
	}, []string{"dataset", "lang"})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wateval_extraction_duration_seconds",
		Help:    "Time spent reading the test corpus and writing the reference file",
		Buckets: prometheus.DefBuckets,
	})

	ScoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wateval_scoring_duration_seconds",
		Help:    "Wall time of the external scoring procedure",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	}, []string{"metric", "lang"})

	ScoringExitCode = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wateval_scoring_exit_code",
		Help: "Exit status of the last scoring procedure",
	}, []string{"metric", "lang"})

	LastScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wateval_last_score",
		Help: "Last score parsed from the scoring procedure output",
	}, []string{"dataset", "metric", "lang"})

	LastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wateval_last_run_timestamp_seconds",
		Help: "Unix time at which the last run finished",
	})
)

func RecordRun(outcome string) {
	RunsTotal.WithLabelValues(outcome).Inc()
	LastRunTimestamp.Set(float64(time.Now().Unix()))
}

func RecordExtraction(dataset, lang string, lines int, duration time.Duration) {
	ReferenceLinesTotal.WithLabelValues(dataset, lang).Add(float64(lines))
	ExtractionDuration.Observe(duration.Seconds())
}

func RecordScoring(metric, lang string, exitCode int, duration time.Duration) {
	ScoringDuration.WithLabelValues(metric, lang).Observe(duration.Seconds())
	ScoringExitCode.WithLabelValues(metric, lang).Set(float64(exitCode))
}

func RecordScore(dataset, metric, lang string, score float64) {
	LastScore.WithLabelValues(dataset, metric, lang).Set(score)
}

// WriteTextfile dumps the default registry in the Prometheus text format,
// suitable for the node exporter textfile collector. The parent directory
// is created if needed.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Outcome labels for RecordRun.
const (
	OutcomeSuccess     = "success"
	OutcomeConfigError = "config_error"
	OutcomeScoreFailed = "score_failed"
	OutcomeError       = "error"
)
