// Package server exposes the benchmark metrics over HTTP while a run is in
// progress.
package server
