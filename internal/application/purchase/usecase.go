// Package purchase casos de uso de órdenes de compra: creación, consulta,
// transición manual de estado y recepción de mercancía.
package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// PurchaseOrderUseCase creación y consulta de órdenes de compra.
type PurchaseOrderUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	materialRepo repository.MaterialRepository
	poRepo       repository.PurchaseOrderRepository
	lineRepo     repository.PurchaseOrderLineRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	materialRepo repository.MaterialRepository,
	poRepo repository.PurchaseOrderRepository,
	lineRepo repository.PurchaseOrderLineRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
		poRepo:       poRepo,
		lineRepo:     lineRepo,
	}
}

// makePONumber genera un número de orden por defecto a partir del instante de creación.
func makePONumber(now time.Time) string {
	return "PO-" + now.UTC().Format("20060102-150405")
}

// Create crea la orden en draft con todas sus líneas en una sola transacción.
// Una orden sin líneas es inválida; cada línea exige quantity_ordered > 0 y
// unit_price >= 0 si viene. Devuelve ErrDuplicate si el po_number ya existe
// en la organización.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actx *authz.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos una línea", domain.ErrInvalidInput)
	}
	currency := in.Currency
	if currency == "" {
		currency = entity.CurrencyEUR
	}
	if currency != entity.CurrencyEUR && currency != entity.CurrencyUSD {
		return nil, fmt.Errorf("%w: moneda %q no soportada", domain.ErrInvalidInput, currency)
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, actx.OrgID, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		OrgID:      actx.OrgID,
		SupplierID: supplier.ID,
		PONumber:   in.PONumber,
		Status:     entity.POStatusDraft,
		Currency:   currency,
		ExpectedAt: in.ExpectedAt,
		Notes:      in.Notes,
		CreatedBy:  actx.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if po.PONumber == "" {
		po.PONumber = makePONumber(now)
	}

	lines := make([]*entity.PurchaseOrderLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if !l.QuantityOrdered.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: quantity_ordered debe ser positiva", domain.ErrInvalidInput, i+1)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: unit_price no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
		material, err := uc.materialRepo.GetByID(ctx, actx.OrgID, l.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, l.MaterialID)
		}
		lines = append(lines, &entity.PurchaseOrderLine{
			ID:               uuid.New().String(),
			OrgID:            actx.OrgID,
			PurchaseOrderID:  po.ID,
			MaterialID:       material.ID,
			QuantityOrdered:  l.QuantityOrdered,
			QuantityReceived: decimal.Zero,
			UnitPrice:        l.UnitPrice,
			CreatedAt:        now,
		})
	}

	// Orden y líneas en la misma transacción: nunca queda una orden vacía persistida.
	err = uc.txRunner.Run(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		lineRepo repository.PurchaseOrderLineRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := poRepo.Create(ctx, po); err != nil {
			return err
		}
		return lineRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}
	return toPOResponse(po, lines), nil
}

// Get devuelve una orden con sus líneas.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, actx *authz.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, actx.OrgID, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	lines, err := uc.lineRepo.ListByOrder(ctx, actx.OrgID, po.ID)
	if err != nil {
		return nil, err
	}
	return toPOResponse(po, lines), nil
}

// List lista las órdenes de la organización con filtros y paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, actx *authz.Context, filter repository.POFilter, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	if filter.Status != "" && filter.Status != "all" && !entity.ValidPOStatus(filter.Status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, filter.Status)
	}
	orders, total, err := uc.poRepo.List(ctx, actx.OrgID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		lines, err := uc.lineRepo.ListByOrder(ctx, actx.OrgID, po.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toPOResponse(po, lines))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toPOResponse(po *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:         po.ID,
		OrgID:      po.OrgID,
		SupplierID: po.SupplierID,
		PONumber:   po.PONumber,
		Status:     po.Status,
		Currency:   po.Currency,
		ExpectedAt: po.ExpectedAt,
		Notes:      po.Notes,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.PurchaseOrderLineResponse{
			ID:               l.ID,
			MaterialID:       l.MaterialID,
			QuantityOrdered:  l.QuantityOrdered,
			QuantityReceived: l.QuantityReceived,
			UnitPrice:        l.UnitPrice,
		})
	}
	return out
}
