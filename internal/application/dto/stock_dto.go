package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockMovementRequest body para POST /api/stock/movements.
type CreateStockMovementRequest struct {
	MaterialID    string          `json:"material_id" validate:"required,uuid"`
	LocationID    string          `json:"location_id" validate:"required,uuid"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Reason        string          `json:"reason"`
	Note          string          `json:"note" validate:"max=1000"`
	ReferenceType string          `json:"reference_type" validate:"max=80"`
	ReferenceID   string          `json:"reference_id" validate:"omitempty,uuid"`
}

// StockMovementResponse salida de un movimiento del ledger.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	LocationID    string          `json:"location_id"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	Reason        string          `json:"reason"`
	Note          string          `json:"note,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// BalanceResponse saldo derivado del ledger para un material.
type BalanceResponse struct {
	MaterialID string          `json:"material_id"`
	LocationID string          `json:"location_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// LowStockItem material en o por debajo de su mínimo, con el déficit sugerido.
type LowStockItem struct {
	MaterialID string          `json:"material_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	MinStock   decimal.Decimal `json:"min_stock"`
	Quantity   decimal.Decimal `json:"quantity"`
	Deficit    decimal.Decimal `json:"deficit"`
	Status     string          `json:"status"`
}

// StockHealthSummary reporte agregado de salud de inventario de la organización.
type StockHealthSummary struct {
	TotalMaterials int             `json:"total_materials"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	InStock        int             `json:"in_stock"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
}
