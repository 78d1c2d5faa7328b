package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/domain/inventory"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// HealthUseCase lado de lectura del inventario: clasificación de materiales y
// reporte agregado de salud. Nunca escribe.
type HealthUseCase struct {
	materialRepo repository.MaterialRepository
	movementRepo repository.StockMovementRepository
}

// NewHealthUseCase construye el caso de uso de reportes.
func NewHealthUseCase(
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
) *HealthUseCase {
	return &HealthUseCase{materialRepo: materialRepo, movementRepo: movementRepo}
}

// LowStock devuelve los materiales activos clasificados como low_stock u
// out_of_stock, con su déficit respecto al mínimo configurado.
func (uc *HealthUseCase) LowStock(ctx context.Context, actx *authz.Context) ([]dto.LowStockItem, error) {
	materials, err := uc.materialRepo.ListActive(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.movementRepo.TotalsByMaterial(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItem, 0)
	for _, m := range materials {
		total := totals[m.ID] // cero si no tiene movimientos
		status := inventory.Classify(total, m.MinStock)
		if status == inventory.StatusInStock {
			continue
		}
		items = append(items, dto.LowStockItem{
			MaterialID: m.ID,
			SKU:        m.SKU,
			Name:       m.Name,
			MinStock:   m.MinStock,
			Quantity:   total,
			Deficit:    inventory.Deficit(total, m.MinStock),
			Status:     string(status),
		})
	}
	return items, nil
}

// Health calcula el resumen agregado de la organización: total de materiales
// activos, cantidad total en existencia y conteo por clasificación. Cada
// material cuenta en exactamente un bucket.
func (uc *HealthUseCase) Health(ctx context.Context, actx *authz.Context) (*dto.StockHealthSummary, error) {
	materials, err := uc.materialRepo.ListActive(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.movementRepo.TotalsByMaterial(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}

	summary := &dto.StockHealthSummary{TotalQuantity: decimal.Zero}
	for _, m := range materials {
		total := totals[m.ID]
		summary.TotalMaterials++
		summary.TotalQuantity = summary.TotalQuantity.Add(total)
		switch inventory.Classify(total, m.MinStock) {
		case inventory.StatusOutOfStock:
			summary.OutOfStock++
		case inventory.StatusLowStock:
			summary.LowStock++
		default:
			summary.InStock++
		}
	}
	return summary, nil
}
