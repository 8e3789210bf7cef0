package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// booking domain.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec

	slotsGenerated     prometheus.Counter
	rentalsReserved    prometheus.Counter
	rentalsCancelled   prometheus.Counter
	rentalsCompleted   prometheus.Counter
	practicesCreated   prometheus.Counter
	practicesDeleted   prometheus.Counter
	practiceSlotsFreed prometheus.Counter

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	slotsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "slots_generated_total",
		Help: "Total half-hour slots materialised by generation runs",
	})

	rentalsReserved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentals_reserved_total",
		Help: "Total rental rows created",
	})

	rentalsCancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentals_cancelled_total",
		Help: "Total rentals cancelled",
	})

	rentalsCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rentals_completed_total",
		Help: "Total rentals marked completed by the sweep",
	})

	practicesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "practices_created_total",
		Help: "Total practices created",
	})

	practicesDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "practices_deleted_total",
		Help: "Total practices deleted",
	})

	practiceSlotsFreed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "practice_slots_freed_total",
		Help: "Total slots released back to FREE by practice deletions",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		dbQueryDuration,
		slotsGenerated, rentalsReserved, rentalsCancelled, rentalsCompleted,
		practicesCreated, practicesDeleted, practiceSlotsFreed,
		goroutines,
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		cacheLatency:       cacheLatency,
		cacheWrite:         cacheWrite,
		cacheHitRatio:      cacheHitRatio,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
		dbQueryDuration:    dbQueryDuration,
		slotsGenerated:     slotsGenerated,
		rentalsReserved:    rentalsReserved,
		rentalsCancelled:   rentalsCancelled,
		rentalsCompleted:   rentalsCompleted,
		practicesCreated:   practicesCreated,
		practicesDeleted:   practicesDeleted,
		practiceSlotsFreed: practiceSlotsFreed,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache set operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// AddSlotsGenerated accumulates newly materialised slots.
func (m *MetricsService) AddSlotsGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

// AddRentalsReserved accumulates created rental rows.
func (m *MetricsService) AddRentalsReserved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rentalsReserved.Add(float64(n))
}

// IncRentalCancelled counts one cancelled rental.
func (m *MetricsService) IncRentalCancelled() {
	if m == nil {
		return
	}
	m.rentalsCancelled.Inc()
}

// AddRentalsCompleted accumulates rentals closed by the completion sweep.
func (m *MetricsService) AddRentalsCompleted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rentalsCompleted.Add(float64(n))
}

// IncPracticeCreated counts one created practice.
func (m *MetricsService) IncPracticeCreated() {
	if m == nil {
		return
	}
	m.practicesCreated.Inc()
}

// IncPracticeDeleted counts one deleted practice.
func (m *MetricsService) IncPracticeDeleted() {
	if m == nil {
		return
	}
	m.practicesDeleted.Inc()
}

// AddPracticeSlotsFreed accumulates slots released by practice deletions.
func (m *MetricsService) AddPracticeSlotsFreed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.practiceSlotsFreed.Add(float64(n))
}
