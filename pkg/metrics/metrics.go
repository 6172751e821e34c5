package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	bookingsAllocated    prometheus.Counter
	allocationsRejected  *prometheus.CounterVec
	notificationFailures prometheus.Counter
	slotToggles          *prometheus.CounterVec
}

// New регистрирует метрики сервиса в переданном registerer.
// Для production используется prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry().
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation", "status"}),
		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"state"}),
		bookingsAllocated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bookings_allocated_total",
			Help: "Bookings successfully allocated",
		}),
		allocationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_allocations_rejected_total",
			Help: "Booking attempts rejected by reason",
		}, []string{"reason"}),
		notificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_notification_failures_total",
			Help: "Booking confirmations the notifier failed to deliver",
		}),
		slotToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_enablement_toggles_total",
			Help: "Administrator slot toggles",
		}, []string{"action"}),
	}
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBConnections обновляет срез состояния пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) BookingAllocated() {
	m.bookingsAllocated.Inc()
}

func (m *Metrics) AllocationRejected(reason string) {
	m.allocationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) NotificationFailed() {
	m.notificationFailures.Inc()
}

func (m *Metrics) SlotToggled(enabled bool) {
	action := "disable"
	if enabled {
		action = "enable"
	}
	m.slotToggles.WithLabelValues(action).Inc()
}
