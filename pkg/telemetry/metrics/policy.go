package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"vanishing-hq/vanishing/pkg/retention"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "vanishing"

// Load results that are not a retention.ErrorKind.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Config contains metric naming settings.
type Config struct {
	Namespace string
	Subsystem string
}

// PolicyMetrics describes a loaded policy and the outcome of loading it.
type PolicyMetrics struct {
	entries   prometheus.Gauge
	retention *prometheus.GaugeVec
	overlaps  prometheus.Gauge
	isDefault prometheus.Gauge

	loadsTotal *prometheus.CounterVec
	lastLoad   prometheus.Gauge

	now func() time.Time
}

// NewPolicyMetrics creates and registers policy metrics with the provided
// registry. If registry is nil, a fresh one is used.
func NewPolicyMetrics(cfg Config, registry *prometheus.Registry) *PolicyMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	pm := &PolicyMetrics{
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "policy_entries",
			Help:      "Number of size ranges in the retention policy",
		}),

		retention: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "policy_retention_seconds",
				Help:      "Retention duration of each size range in seconds",
			},
			[]string{"lower", "upper"},
		),

		overlaps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "policy_overlapping_ranges",
			Help:      "Number of pairs of size ranges that intersect",
		}),

		isDefault: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "policy_default",
			Help:      "1 when no config file exists and the default policy is in effect",
		}),

		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "config_loads_total",
				Help:      "Total number of config load attempts by source and result",
			},
			[]string{"source", "result"},
		),

		lastLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "config_last_load_timestamp_seconds",
			Help:      "Unix time of the last config load attempt",
		}),

		now: time.Now,
	}

	registry.MustRegister(
		pm.entries,
		pm.retention,
		pm.overlaps,
		pm.isDefault,
		pm.loadsTotal,
		pm.lastLoad,
	)

	return pm
}

// ObservePolicy replaces the policy gauges with the contents of p.
func (pm *PolicyMetrics) ObservePolicy(p *retention.Policy, isDefault bool) {
	pm.retention.Reset()
	for _, e := range p.Entries() {
		pm.retention.WithLabelValues(
			strconv.FormatUint(e.Range.Lower, 10),
			strconv.FormatUint(e.Range.Upper, 10),
		).Set(e.Retention.Seconds())
	}

	pm.entries.Set(float64(p.Len()))
	pm.overlaps.Set(float64(len(p.Overlaps())))
	if isDefault {
		pm.isDefault.Set(1)
	} else {
		pm.isDefault.Set(0)
	}
}

// RecordLoad counts a load attempt. The result label is "success", the
// retention.ErrorKind of err, or "error" for anything else.
func (pm *PolicyMetrics) RecordLoad(source string, err error) {
	pm.loadsTotal.WithLabelValues(source, loadResult(err)).Inc()
	pm.lastLoad.Set(float64(pm.now().Unix()))
}

func loadResult(err error) string {
	if err == nil {
		return ResultSuccess
	}
	if kind := retention.KindOf(err); kind != "" {
		return string(kind)
	}
	return ResultError
}
