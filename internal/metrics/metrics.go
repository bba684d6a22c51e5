// Package metrics exposes per-run command metrics in the Prometheus
// textfile format, for node_exporter's textfile collector to pick up after
// cron runs.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "routeshell"

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "routeshell").
	Namespace string

	// ConstLabels are added to all metrics.
	ConstLabels prometheus.Labels

	// TextfilePath is where Flush writes. Empty disables Flush.
	TextfilePath string
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithTextfile sets the textfile Flush writes to.
func WithTextfile(path string) Option {
	return func(c *Config) {
		c.TextfilePath = path
	}
}

// Recorder collects run metrics on a private registry.
type Recorder struct {
	registry    *prometheus.Registry
	path        string
	invocations *prometheus.CounterVec
	exitStatus  *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
	timestamp   *prometheus.GaugeVec
}

// NewRecorder builds a Recorder.
func NewRecorder(opts ...Option) *Recorder {
	cfg := Config{Namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		path:     cfg.TextfilePath,
		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "invocations_total",
			Help:        "Total command invocations by exit status.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"command", "status"}),
		exitStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "last_exit_status",
			Help:        "Exit status of the last run.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"command"}),
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "last_run_duration_seconds",
			Help:        "Wall time of the last run.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"command"}),
		timestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the last run finished.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"command"}),
	}
}

// Observe records one finished run of command.
func (r *Recorder) Observe(command string, status int, started time.Time, took time.Duration) {
	if r == nil {
		return
	}
	if command == "" {
		command = "none"
	}

	r.invocations.WithLabelValues(command, strconv.Itoa(status)).Inc()
	r.exitStatus.WithLabelValues(command).Set(float64(status))
	r.duration.WithLabelValues(command).Set(took.Seconds())
	r.timestamp.WithLabelValues(command).Set(float64(started.Add(took).Unix()))
}

// Registry returns the private registry, for tests and embedding.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Path returns the configured textfile path.
func (r *Recorder) Path() string {
	return r.path
}

// Flush writes all metrics to the textfile. No-op without a path.
func (r *Recorder) Flush() error {
	if r == nil || r.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
