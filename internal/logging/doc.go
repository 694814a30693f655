// Package logging is the structured logger shared by the benchmark, the
// calibration run and the metrics server.
package logging
