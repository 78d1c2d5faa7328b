package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger (DIP).
// El ledger es append-only: no hay Update ni Delete. Los saldos se derivan
// siempre por agregación de los deltas.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// SumForMaterial suma los deltas del material; locationID vacío agrega
	// todas las ubicaciones. Sin movimientos devuelve cero, nunca error.
	SumForMaterial(ctx context.Context, orgID, materialID, locationID string) (decimal.Decimal, error)
	// TotalsByMaterial devuelve la existencia total por material de la organización.
	TotalsByMaterial(ctx context.Context, orgID string) (map[string]decimal.Decimal, error)
	ListByMaterial(ctx context.Context, orgID, materialID string, limit, offset int) ([]*entity.StockMovement, int, error)
}
