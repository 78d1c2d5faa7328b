// Package inventory contiene la clasificación pura de stock derivada de los
// saldos del ledger.
package inventory

import "github.com/shopspring/decimal"

// StockStatus estado de existencias de un material.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusInStock    StockStatus = "in_stock"
)

// Classify clasifica un material según su existencia total (suma del ledger en
// todas las ubicaciones) y su umbral mínimo configurado. El piso absoluto
// (total <= 0) se evalúa primero, independiente del umbral.
func Classify(totalOnHand, minStock decimal.Decimal) StockStatus {
	if totalOnHand.LessThanOrEqual(decimal.Zero) {
		return StatusOutOfStock
	}
	if totalOnHand.LessThanOrEqual(minStock) {
		return StatusLowStock
	}
	return StatusInStock
}

// Deficit cantidad faltante para alcanzar el mínimo: max(0, min_stock - total).
func Deficit(totalOnHand, minStock decimal.Decimal) decimal.Decimal {
	d := minStock.Sub(totalOnHand)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
