// Package metrics contadores Prometheus de la aplicación.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsTotal movimientos de ledger registrados, por motivo.
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockstock_stock_movements_total",
		Help: "Movimientos de inventario registrados en el ledger.",
	}, []string{"reason"})

	// ReceiptsTotal recepciones de líneas de orden de compra aplicadas.
	ReceiptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockstock_po_receipts_total",
		Help: "Recepciones de líneas de orden de compra aplicadas.",
	})

	// TransitionsTotal transiciones de estado de órdenes de compra, por estado destino.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockstock_po_transitions_total",
		Help: "Transiciones de estado de órdenes de compra.",
	}, []string{"to"})
)
