// Package metrics instruments expression evaluation with Prometheus counters
// and histograms and serves them on a /metrics endpoint. Each Metrics value
// owns its registry, so tests and multiple engines never share state.
package metrics
