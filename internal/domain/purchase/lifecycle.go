// Package purchase contiene la máquina de estados de órdenes de compra,
// independiente de HTTP y de la persistencia para que sus invariantes sean
// verificables de forma aislada.
package purchase

import (
	"fmt"

	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// ValidateTransition valida una transición manual de estado. La única
// transición manual legal es draft -> sent; partial y received se derivan del
// avance de las líneas y nunca se solicitan, y cancelled pasa por Cancel.
// Devuelve ErrInvalidTransition nombrando ambos estados si no es legal.
func ValidateTransition(current, requested string) error {
	if current == entity.POStatusDraft && requested == entity.POStatusSent {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, requested)
}

// ValidateCancel valida la cancelación administrativa de una orden.
// Solo los estados no terminales (draft, sent, partial) pueden cancelarse.
func ValidateCancel(current string) error {
	switch current {
	case entity.POStatusDraft, entity.POStatusSent, entity.POStatusPartial:
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, entity.POStatusCancelled)
}

// ValidateReceivable verifica que la orden admite recepciones: debe estar en
// sent o partial. Recibir contra draft o contra un estado terminal es ErrInvalidState.
func ValidateReceivable(current string) error {
	switch current {
	case entity.POStatusSent, entity.POStatusPartial:
		return nil
	}
	return fmt.Errorf("%w: la orden está en estado %s", domain.ErrInvalidState, current)
}

// DeriveStatus recalcula el estado de la orden a partir de TODAS sus líneas.
// Si cada línea tiene quantity_received == quantity_ordered el estado es
// received; si al menos una línea tiene avance es partial; si ninguna lo
// tiene, el estado actual se conserva. El cálculo es idempotente: con las
// mismas líneas siempre produce el mismo resultado.
func DeriveStatus(current string, lines []*entity.PurchaseOrderLine) string {
	if len(lines) == 0 {
		return current
	}
	allFulfilled := true
	anyProgress := false
	for _, line := range lines {
		if !line.Fulfilled() {
			allFulfilled = false
		}
		if line.QuantityReceived.IsPositive() {
			anyProgress = true
		}
	}
	switch {
	case allFulfilled:
		return entity.POStatusReceived
	case anyProgress:
		return entity.POStatusPartial
	default:
		return current
	}
}
