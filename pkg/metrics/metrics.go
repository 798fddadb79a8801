// Package metrics instrumentación Prometheus del servicio.
//
// Cada instancia tiene su propio registry; se monta así:
//
//	app.Use(m.Middleware())
//	app.Get("/metrics", m.Handler())
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de un movimiento de stock.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Metrics colectores HTTP y de dominio.
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge
	Movements       *prometheus.CounterVec
	MovementItems   *prometheus.CounterVec
}

// New crea y registra los colectores bajo el namespace dado (guiones pasan a guion bajo).
func New(namespace string) *Metrics {
	ns := strings.ReplaceAll(namespace, "-", "_")
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duración de las peticiones HTTP en segundos.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total de peticiones HTTP.",
			},
			[]string{"method", "path", "status"},
		),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Peticiones HTTP en curso.",
		}),
		Movements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "stock",
				Name:      "movements_total",
				Help:      "Movimientos de stock por tipo y resultado.",
			},
			[]string{"type", "result"},
		),
		MovementItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "stock",
				Name:      "movement_items_total",
				Help:      "Ítems de movimiento por tipo y resultado.",
			},
			[]string{"type", "result"},
		),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.Movements,
		m.MovementItems,
	)
	return m
}

// Middleware registra duración, total y peticiones en curso. Usa la ruta registrada
// (/products/:id) y no la URL cruda para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.RequestInFlight.Inc()
		defer m.RequestInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// Handler expone el registry en formato Prometheus / OpenMetrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}

// MovementRecorded cuenta un movimiento y sus ítems.
func (m *Metrics) MovementRecorded(movementType string, accepted bool, items int) {
	result := ResultRejected
	if accepted {
		result = ResultAccepted
	}
	m.Movements.WithLabelValues(movementType, result).Inc()
	m.MovementItems.WithLabelValues(movementType, result).Add(float64(items))
}
