package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del motor de inventario y alertas, expuestos en /metrics.
var (
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_recorded_total",
		Help: "Movimientos de stock comprometidos en el ledger",
	}, []string{"type"})

	MovementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_rejected_total",
		Help: "Movimientos rechazados antes de comprometer",
	}, []string{"reason"}) // validation, insufficient_stock, not_found

	AlertsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_generated_total",
		Help: "Notificaciones creadas por el motor de alertas",
	}, []string{"type"})

	AlertSweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alert_sweeps_total",
		Help: "Ejecuciones de GenerateAlerts (poll o barrido)",
	})

	ScannerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_scanner_failures_total",
		Help: "Fallos por escáner de condiciones (fail-open)",
	}, []string{"scanner"})
)
