package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusSent      = "sent"
	POStatusPartial   = "partial"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// Monedas soportadas para órdenes de compra.
const (
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
)

// ValidPOStatus indica si el estado es uno de los conocidos.
func ValidPOStatus(status string) bool {
	switch status {
	case POStatusDraft, POStatusSent, POStatusPartial, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder orden de compra a un proveedor. Nace en draft con sus líneas
// en la misma transacción (una orden sin líneas es inválida) y nunca se borra:
// desde estados no terminales solo puede cancelarse.
type PurchaseOrder struct {
	ID         string
	OrgID      string
	SupplierID string
	PONumber   string // único dentro de la organización
	Status     string
	Currency   string
	ExpectedAt *time.Time
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine línea de una orden de compra.
// Invariantes: QuantityOrdered > 0; 0 <= QuantityReceived <= QuantityOrdered;
// QuantityReceived solo crece (monótona no decreciente).
type PurchaseOrderLine struct {
	ID               string
	OrgID            string
	PurchaseOrderID  string
	MaterialID       string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitPrice        *decimal.Decimal
	CreatedAt        time.Time
}

// Fulfilled indica si la línea está completamente recibida.
func (l *PurchaseOrderLine) Fulfilled() bool {
	return l.QuantityReceived.GreaterThanOrEqual(l.QuantityOrdered)
}

// Remaining cantidad pendiente por recibir.
func (l *PurchaseOrderLine) Remaining() decimal.Decimal {
	return l.QuantityOrdered.Sub(l.QuantityReceived)
}
