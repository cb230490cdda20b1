// Package metrics exposes the loaded retention policy as Prometheus metrics.
//
// # Metrics
//
//   - vanishing_policy_entries: number of size ranges in the policy
//   - vanishing_policy_retention_seconds{lower,upper}: retention per range
//   - vanishing_policy_overlapping_ranges: number of intersecting range pairs
//   - vanishing_policy_default: 1 when the default policy is in effect
//   - vanishing_config_loads_total{source,result}: load attempts by outcome
//   - vanishing_config_last_load_timestamp_seconds: time of the last load
//
// # Usage
//
// vanishing runs once and exits, so metrics are written in the node_exporter
// textfile collector format instead of being served over HTTP:
//
//	registry := prometheus.NewRegistry()
//	m := metrics.NewPolicyMetrics(metrics.Config{}, registry)
//	m.RecordLoad("file", err)
//	m.ObservePolicy(cfg.Policy, false)
//	if err := metrics.WriteTextfile(path, registry); err != nil {
//	    return err
//	}
package metrics
