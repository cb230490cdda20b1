// Package telemetry groups the observability packages used by vanishing.
//
// # Components
//
//   - logging: structured logging on log/slog with invocation-scoped fields
//   - metrics: Prometheus gauges describing the loaded retention policy,
//     exportable in node_exporter textfile format
//
// A vanishing run is a single short-lived process, so metrics are written to
// a textfile rather than served over HTTP.
package telemetry
