package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material artículo de inventario identificado por (org_id, sku) único.
// La cantidad en existencia nunca se edita directamente: solo cambia a través
// de movimientos del ledger. No se elimina; se desactiva (is_active = false).
type Material struct {
	ID          string
	OrgID       string
	SKU         string
	Name        string
	Description string
	UOM         string          // unidad de medida ("unit", "kg", ...)
	MinStock    decimal.Decimal // umbral de stock bajo, >= 0
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
