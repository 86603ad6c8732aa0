package interfaces

import "github.com/prometheus/client_golang/prometheus"

// Metrics wraps a prometheus registry with name-keyed metric access so
// callers register and bump metrics without holding collector handles.
type Metrics interface {
	GetRegistry() *prometheus.Registry
	IncCounter(name string)
	AddCounter(name string, value float64)
	ObserveHistogram(name string, value float64)
	SetGauge(name string, value float64)
	IncGauge(name string)
	DecGauge(name string)
	IncCounterVec(name string, labels ...string)
	// RegisterCounter registers a new counter metric.
	RegisterCounter(name, help string)
	// RegisterCounterVec registers a new counter metric with labels.
	RegisterCounterVec(name, help string, labels []string)
	// RegisterHistogram registers a new histogram metric.
	RegisterHistogram(name, help string, buckets []float64)
	// RegisterGauge registers a new gauge metric.
	RegisterGauge(name, help string)
}
