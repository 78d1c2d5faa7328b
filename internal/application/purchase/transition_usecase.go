package purchase

import (
	"context"
	"fmt"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	domainpurchase "github.com/lockstock/lockstock-api/internal/domain/purchase"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
	"github.com/lockstock/lockstock-api/pkg/metrics"
)

// TransitionUseCase transición manual de estado de una orden de compra.
type TransitionUseCase struct {
	txRunner TxRunner
}

// NewTransitionUseCase construye el caso de uso.
func NewTransitionUseCase(txRunner TxRunner) *TransitionUseCase {
	return &TransitionUseCase{txRunner: txRunner}
}

// Transition aplica una transición solicitada por el caller. La única manual
// es draft -> sent; cancelled se acepta como acción administrativa desde
// estados no terminales. partial y received nunca se solicitan: los deriva la
// recepción. La validación y la escritura ocurren con la fila bloqueada para
// que dos transiciones concurrentes no se pisen.
func (uc *TransitionUseCase) Transition(ctx context.Context, actx *authz.Context, poID, requested string) (*entity.PurchaseOrder, error) {
	if !entity.ValidPOStatus(requested) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, requested)
	}

	var updated *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.PurchaseOrderLineRepository,
		_ repository.StockMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(ctx, actx.OrgID, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, poID)
		}

		if requested == entity.POStatusCancelled {
			if err := domainpurchase.ValidateCancel(po.Status); err != nil {
				return err
			}
		} else if err := domainpurchase.ValidateTransition(po.Status, requested); err != nil {
			return err
		}

		if err := poRepo.UpdateStatus(ctx, actx.OrgID, po.ID, requested); err != nil {
			return err
		}
		po.Status = requested
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.TransitionsTotal.WithLabelValues(requested).Inc()
	return updated, nil
}
