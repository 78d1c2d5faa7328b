package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=80"`
	Name        string          `json:"name" validate:"required,min=1,max=160"`
	Description string          `json:"description" validate:"max=2000"`
	UOM         string          `json:"uom" validate:"max=30"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID          string          `json:"id"`
	OrgID       string          `json:"org_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UOM         string          `json:"uom"`
	MinStock    decimal.Decimal `json:"min_stock"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ImportMaterialsResult resultado del import CSV: filas creadas y errores por línea.
type ImportMaterialsResult struct {
	Created int               `json:"created"`
	Errors  []ImportRowError  `json:"errors,omitempty"`
}

// ImportRowError error de una fila del CSV (1-indexada, sin contar cabecera).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
