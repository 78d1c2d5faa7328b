package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// POFilter filtros de listado de órdenes de compra.
type POFilter struct {
	Status     string // vacío = todos
	SupplierID string // vacío = todos
	Q          string // búsqueda por po_number
}

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder (DIP).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, orgID, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate carga la orden bloqueando su fila (SELECT FOR UPDATE) para
	// serializar recepciones y transiciones concurrentes sobre la misma orden.
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, orgID, id, status string) error
	List(ctx context.Context, orgID string, filter POFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error)
}

// PurchaseOrderLineRepository define el puerto de persistencia para líneas de orden (DIP).
type PurchaseOrderLineRepository interface {
	CreateBatch(ctx context.Context, lines []*entity.PurchaseOrderLine) error
	GetByID(ctx context.Context, orgID, id string) (*entity.PurchaseOrderLine, error)
	ListByOrder(ctx context.Context, orgID, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error)
	UpdateReceived(ctx context.Context, orgID, id string, quantityReceived decimal.Decimal) error
}
