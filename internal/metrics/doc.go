// Package metrics collects runtime memory snapshots and exports benchmark
// measurements as Prometheus metrics.
package metrics
