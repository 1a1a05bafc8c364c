package config

import "runtime"

// Parallel threshold resolution chain (highest priority first):
//   1. CLI flag (--parallel-threshold)
//   2. Environment variable (RESCALC_PARALLEL_THRESHOLD)
//   3. Hardware estimation (this file), when the value is AutoThreshold

// ApplyAdaptiveThresholds replaces an AutoThreshold parallel threshold with
// an estimate based on the host CPU count. Explicit values are kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelThreshold == AutoThreshold {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// number of children from which siblings are evaluated concurrently.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 0 // No parallelism
	case numCPU <= 4:
		return 256
	case numCPU <= 16:
		return 128
	default:
		return 64
	}
}
