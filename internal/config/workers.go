package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flags (--workers)
//   2. Environment variables (SUMBENCH_WORKERS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveWorkers fills in the worker count from the hardware when it
// was left at its zero default.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers returns one worker per logical processor.
func EstimateOptimalWorkers() int {
	return runtime.NumCPU()
}
