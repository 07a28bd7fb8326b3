package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics содержит метрики работы документного хранилища и репозиториев.
type StoreMetrics struct {
	// Счётчики циклов чтения/записи документа
	loads        prometheus.Counter
	saves        prometheus.Counter
	loadFailures prometheus.Counter
	saveFailures prometheus.Counter

	// Гистограммы длительности файловых операций
	loadDuration prometheus.Histogram
	saveDuration prometheus.Histogram

	// Исходы операций репозиториев по типу сущности и операции
	operations *prometheus.CounterVec
}

// NewStoreMetrics создаёт метрики и регистрирует их в DefaultRegisterer.
func NewStoreMetrics() *StoreMetrics {
	return newStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		loads: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_store_loads_total",
			Help: "Total number of document load cycles",
		}),
		saves: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_store_saves_total",
			Help: "Total number of document save cycles",
		}),
		loadFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_store_load_failures_total",
			Help: "Total number of failed document loads",
		}),
		saveFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_store_save_failures_total",
			Help: "Total number of failed document saves",
		}),
		loadDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "catalog_store_load_duration_seconds",
			Help:    "Duration of document load operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		saveDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "catalog_store_save_duration_seconds",
			Help:    "Duration of document save operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "catalog_repository_operations_total",
			Help: "Total number of repository operations by entity, operation and outcome",
		}, []string{"entity", "operation", "outcome"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordLoad фиксирует завершённый цикл чтения документа.
func (m *StoreMetrics) RecordLoad(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.loads.Inc()
	m.loadDuration.Observe(duration.Seconds())
	if err != nil {
		m.loadFailures.Inc()
	}
}

// RecordSave фиксирует завершённый цикл записи документа.
func (m *StoreMetrics) RecordSave(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.saves.Inc()
	m.saveDuration.Observe(duration.Seconds())
	if err != nil {
		m.saveFailures.Inc()
	}
}

// RecordOperation фиксирует исход операции репозитория.
func (m *StoreMetrics) RecordOperation(entity, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(entity, operation, outcome).Inc()
}
