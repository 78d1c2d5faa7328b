package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest entrada para crear una orden de compra en draft.
// Debe incluir al menos una línea.
type CreatePurchaseOrderRequest struct {
	SupplierID string                           `json:"supplier_id" validate:"required,uuid"`
	Currency   string                           `json:"currency"`
	PONumber   string                           `json:"po_number" validate:"max=100"`
	ExpectedAt *time.Time                       `json:"expected_at"`
	Notes      string                           `json:"notes" validate:"max=2000"`
	Lines      []CreatePurchaseOrderLineRequest `json:"lines" validate:"required,min=1"`
}

// CreatePurchaseOrderLineRequest línea de la orden a crear.
type CreatePurchaseOrderLineRequest struct {
	MaterialID      string           `json:"material_id" validate:"required,uuid"`
	QuantityOrdered decimal.Decimal  `json:"quantity_ordered"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
}

// TransitionPORequest body para PATCH /api/purchase-orders/:id/status.
type TransitionPORequest struct {
	Status string `json:"status" validate:"required"`
}

// ReceivePORequest body para POST /api/purchase-orders/:id/receive.
type ReceivePORequest struct {
	Receipts []ReceiptRequest `json:"receipts" validate:"required,min=1"`
}

// ReceiptRequest recepción de una línea en una ubicación.
type ReceiptRequest struct {
	POLineID         string          `json:"po_line_id" validate:"required,uuid"`
	LocationID       string          `json:"location_id" validate:"required,uuid"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// ReceivePOResponse estado resultante + avance por línea tras una recepción.
type ReceivePOResponse struct {
	Status string               `json:"status"`
	Lines  []POLineProgressItem `json:"lines"`
}

// POLineProgressItem avance de una línea.
type POLineProgressItem struct {
	ID               string          `json:"id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// PurchaseOrderLineResponse salida de una línea.
type PurchaseOrderLineResponse struct {
	ID               string           `json:"id"`
	MaterialID       string           `json:"material_id"`
	QuantityOrdered  decimal.Decimal  `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal  `json:"quantity_received"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	OrgID      string                      `json:"org_id"`
	SupplierID string                      `json:"supplier_id"`
	PONumber   string                      `json:"po_number"`
	Status     string                      `json:"status"`
	Currency   string                      `json:"currency"`
	ExpectedAt *time.Time                  `json:"expected_at,omitempty"`
	Notes      string                      `json:"notes,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	Lines      []PurchaseOrderLineResponse `json:"lines,omitempty"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
