package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках можно передавать nil
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	partitionsTotal   *prometheus.CounterVec
	partitionDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	registerer prometheus.Registerer
	namespace  string
}

// New создает коллектор и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллектор с заданным регистратором (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	ns := sanitize(serviceName)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		upstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream requests by endpoint and outcome",
		}, []string{"endpoint", "status"}),

		upstreamRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"endpoint"}),

		partitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "availability_partitions_total",
			Help:      "Processed date partitions by mode and outcome",
		}, []string{"mode", "outcome"}),

		partitionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "availability_partition_duration_seconds",
			Help:      "Time spent fetching and computing one date partition",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"mode"}),

		dbQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "db_queries_total",
			Help:      "Total number of database queries by operation and status",
		}, []string{"operation", "status"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),

		registerer: reg,
		namespace:  ns,
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream учитывает запрос к upstream источнику
func (m *Metrics) ObserveUpstream(endpoint, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.upstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObservePartition учитывает обработанную партицию дат
func (m *Metrics) ObservePartition(mode, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.partitionsTotal.WithLabelValues(mode, outcome).Inc()
	m.partitionDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// ObserveDBQuery учитывает запрос к базе данных
func (m *Metrics) ObserveDBQuery(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RegisterDBStats регистрирует gauge-метрики connection pool
func (m *Metrics) RegisterDBStats(stats func() sql.DBStats) {
	if m == nil {
		return
	}
	factory := promauto.With(m.registerer)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "db_open_connections",
		Help:      "Number of established database connections",
	}, func() float64 {
		return float64(stats().OpenConnections)
	})

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "db_in_use_connections",
		Help:      "Number of database connections currently in use",
	}, func() float64 {
		return float64(stats().InUse)
	})
}

// CacheStatsFunc источник статистики кэша
type CacheStatsFunc func() (hits, misses uint64, entries int)

// RegisterCacheStats регистрирует gauge-метрики кэша, значения читаются при каждом scrape
func (m *Metrics) RegisterCacheStats(cacheName string, stats CacheStatsFunc) {
	if m == nil {
		return
	}
	factory := promauto.With(m.registerer)
	labels := prometheus.Labels{"cache": cacheName}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "cache_hits",
		Help:        "Cache hits since start",
		ConstLabels: labels,
	}, func() float64 {
		hits, _, _ := stats()
		return float64(hits)
	})

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "cache_misses",
		Help:        "Cache misses since start",
		ConstLabels: labels,
	}, func() float64 {
		_, misses, _ := stats()
		return float64(misses)
	})

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "cache_entries",
		Help:        "Current number of cache entries",
		ConstLabels: labels,
	}, func() float64 {
		_, _, entries := stats()
		return float64(entries)
	})
}

// sanitize приводит имя сервиса к допустимому namespace prometheus
func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
