package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (HASSECALC_WORKERS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills settings left at their zero default with values
// derived from the host. Only Workers is adaptive today.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers picks the batch concurrency: one worker per core,
// capped at 64.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 1:
		return 1
	case numCPU >= 64:
		return 64
	default:
		return numCPU
	}
}
