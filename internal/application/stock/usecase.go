// Package stock implementa el ledger de inventario: registro de movimientos
// con delta firmado y derivación de saldos por agregación.
package stock

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
	"github.com/lockstock/lockstock-api/pkg/metrics"
)

// LedgerUseCase registro y consulta de movimientos del ledger.
type LedgerUseCase struct {
	movementRepo repository.StockMovementRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(
	movementRepo repository.StockMovementRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		movementRepo: movementRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
	}
}

// RegisterMovement añade un movimiento inmutable al ledger.
// Precondiciones: delta != 0; material y ubicación existen y pertenecen a la
// organización del actor (un ID de otra organización se reporta como NotFound).
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, actx *authz.Context, in dto.CreateStockMovementRequest) (*entity.StockMovement, error) {
	if in.QuantityDelta.IsZero() {
		return nil, fmt.Errorf("%w: quantity_delta no puede ser cero", domain.ErrInvalidInput)
	}
	reason := in.Reason
	if reason == "" {
		reason = entity.ReasonAdjustment
	}
	if !entity.ValidMovementReason(reason) {
		return nil, fmt.Errorf("%w: motivo %q desconocido", domain.ErrInvalidInput, reason)
	}

	material, err := uc.materialRepo.GetByID(ctx, actx.OrgID, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, in.MaterialID)
	}
	location, err := uc.locationRepo.GetByID(ctx, actx.OrgID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, in.LocationID)
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		OrgID:         actx.OrgID,
		MaterialID:    material.ID,
		LocationID:    location.ID,
		QuantityDelta: in.QuantityDelta,
		Reason:        reason,
		Note:          in.Note,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		CreatedBy:     actx.UserID,
		CreatedAt:     time.Now(),
	}
	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(reason).Inc()
	return mov, nil
}

// Balance devuelve el saldo del material: suma de todos los deltas del ledger,
// opcionalmente acotada a una ubicación. Sin movimientos devuelve cero.
func (uc *LedgerUseCase) Balance(ctx context.Context, actx *authz.Context, materialID, locationID string) (decimal.Decimal, error) {
	material, err := uc.materialRepo.GetByID(ctx, actx.OrgID, materialID)
	if err != nil {
		return decimal.Zero, err
	}
	if material == nil {
		return decimal.Zero, fmt.Errorf("%w: material %s", domain.ErrNotFound, materialID)
	}
	return uc.movementRepo.SumForMaterial(ctx, actx.OrgID, materialID, locationID)
}

// ListMovements historial de movimientos de un material, paginado.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, actx *authz.Context, materialID string, page dto.PageRequest) ([]*entity.StockMovement, int, error) {
	page.DefaultPage()
	return uc.movementRepo.ListByMaterial(ctx, actx.OrgID, materialID, page.Limit, page.Offset)
}
