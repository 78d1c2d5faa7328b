package purchase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	domainpurchase "github.com/lockstock/lockstock-api/internal/domain/purchase"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
	"github.com/lockstock/lockstock-api/pkg/metrics"
)

// ReceiveUseCase aplica un lote de recepciones contra una orden de compra.
// Todo el lote se procesa en una transacción con la fila de la orden bloqueada
// (SELECT FOR UPDATE): o se aplica completo —incrementos de línea, movimientos
// del ledger y nuevo estado— o no se aplica nada.
type ReceiveUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
}

// NewReceiveUseCase construye el caso de uso de recepción.
func NewReceiveUseCase(txRunner TxRunner, locationRepo repository.LocationRepository) *ReceiveUseCase {
	return &ReceiveUseCase{txRunner: txRunner, locationRepo: locationRepo}
}

// Receive procesa el lote:
//  1. la orden debe estar en sent o partial;
//  2. cada recepción debe apuntar a una línea de la orden y no empujar
//     quantity_received por encima de quantity_ordered — un exceso rechaza el
//     lote completo, nunca se recorta;
//  3. por cada recepción se añade un movimiento purchase_receive al ledger
//     referenciando la orden;
//  4. el estado se deriva del conjunto completo de líneas ya actualizadas.
//
// Devuelve el estado resultante y el avance de todas las líneas de la orden.
func (uc *ReceiveUseCase) Receive(ctx context.Context, actx *authz.Context, poID string, in dto.ReceivePORequest) (*dto.ReceivePOResponse, error) {
	if len(in.Receipts) == 0 {
		return nil, fmt.Errorf("%w: el lote de recepciones está vacío", domain.ErrInvalidInput)
	}
	for i, r := range in.Receipts {
		if !r.QuantityReceived.IsPositive() {
			return nil, fmt.Errorf("%w: recepción %d: quantity_received debe ser positiva", domain.ErrInvalidInput, i+1)
		}
	}

	// Las ubicaciones se validan antes de abrir la transacción: son lecturas
	// puras que no participan del invariante de la orden.
	seen := make(map[string]bool)
	for _, r := range in.Receipts {
		if seen[r.LocationID] {
			continue
		}
		location, err := uc.locationRepo.GetByID(ctx, actx.OrgID, r.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, r.LocationID)
		}
		seen[r.LocationID] = true
	}

	var out *dto.ReceivePOResponse
	err := uc.txRunner.Run(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		lineRepo repository.PurchaseOrderLineRepository,
		movRepo repository.StockMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(ctx, actx.OrgID, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, poID)
		}
		if err := domainpurchase.ValidateReceivable(po.Status); err != nil {
			return err
		}

		lines, err := lineRepo.ListByOrder(ctx, actx.OrgID, po.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.PurchaseOrderLine, len(lines))
		for _, l := range lines {
			byID[l.ID] = l
		}

		// Validar el lote completo contra el estado acumulado ANTES de escribir
		// nada: varios receipts pueden apuntar a la misma línea.
		pending := make(map[string]*entity.PurchaseOrderLine)
		for _, r := range in.Receipts {
			line, ok := byID[r.POLineID]
			if !ok {
				return fmt.Errorf("%w: la línea %s no pertenece a la orden %s", domain.ErrNotFound, r.POLineID, po.ID)
			}
			next := line.QuantityReceived.Add(r.QuantityReceived)
			if next.GreaterThan(line.QuantityOrdered) {
				overflow := next.Sub(line.QuantityOrdered)
				return fmt.Errorf("%w: línea %s: excede lo ordenado por %s",
					domain.ErrQuantityExceedsOrdered, line.ID, overflow.String())
			}
			line.QuantityReceived = next
			pending[line.ID] = line
		}

		now := time.Now()
		touched := make([]string, 0, len(pending))
		for id := range pending {
			touched = append(touched, id)
		}
		sort.Strings(touched) // orden estable de escritura

		for _, id := range touched {
			line := pending[id]
			if err := lineRepo.UpdateReceived(ctx, actx.OrgID, line.ID, line.QuantityReceived); err != nil {
				return err
			}
		}
		for _, r := range in.Receipts {
			mov := &entity.StockMovement{
				ID:            uuid.New().String(),
				OrgID:         actx.OrgID,
				MaterialID:    byID[r.POLineID].MaterialID,
				LocationID:    r.LocationID,
				QuantityDelta: r.QuantityReceived,
				Reason:        entity.ReasonPurchaseReceive,
				ReferenceType: "purchase_order",
				ReferenceID:   po.ID,
				CreatedBy:     actx.UserID,
				CreatedAt:     now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}

		// Derivar el estado con TODAS las líneas de la orden, no solo las del lote.
		newStatus := domainpurchase.DeriveStatus(po.Status, lines)
		if newStatus != po.Status {
			if err := poRepo.UpdateStatus(ctx, actx.OrgID, po.ID, newStatus); err != nil {
				return err
			}
			po.Status = newStatus
		}

		out = &dto.ReceivePOResponse{Status: po.Status}
		for _, l := range lines {
			out.Lines = append(out.Lines, dto.POLineProgressItem{
				ID:               l.ID,
				QuantityOrdered:  l.QuantityOrdered,
				QuantityReceived: l.QuantityReceived,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ReceiptsTotal.Add(float64(len(in.Receipts)))
	return out, nil
}
