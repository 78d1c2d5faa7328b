package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstock/lockstock-api/internal/application/stock"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/inventory"
)

func addMaterial(s *fakeStore, id, sku string, minStock int64, active bool) {
	s.materials[id] = entity.Material{
		ID: id, OrgID: testOrg, SKU: sku, Name: "Material " + sku,
		UOM: "unit", MinStock: decimal.NewFromInt(minStock), IsActive: active,
	}
}

func addDelta(s *fakeStore, materialID string, delta int64) {
	s.movements = append(s.movements, entity.StockMovement{
		ID: materialID + "-mov", OrgID: testOrg, MaterialID: materialID,
		LocationID: "loc-1", QuantityDelta: decimal.NewFromInt(delta),
		Reason: entity.ReasonAdjustment, CreatedBy: testUser,
	})
}

func newHealthUC(s *fakeStore) *stock.HealthUseCase {
	return stock.NewHealthUseCase(&fakeMaterialRepo{s: s}, &fakeMovementRepo{s: s})
}

func TestLowStock_ClasificacionYDeficit(t *testing.T) {
	s := newFakeStore()
	addMaterial(s, "mat-out", "SKU-1", 5, true)  // sin movimientos: out_of_stock
	addMaterial(s, "mat-low", "SKU-2", 10, true) // 4 en existencia: low_stock
	addMaterial(s, "mat-ok", "SKU-3", 3, true)   // 8 en existencia: in_stock, fuera de la lista
	addDelta(s, "mat-low", 4)
	addDelta(s, "mat-ok", 8)
	uc := newHealthUC(s)

	items, err := uc.LowStock(context.Background(), memberCtx())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "mat-out", items[0].MaterialID)
	assert.Equal(t, string(inventory.StatusOutOfStock), items[0].Status)
	assert.True(t, items[0].Deficit.Equal(decimal.NewFromInt(5)))

	assert.Equal(t, "mat-low", items[1].MaterialID)
	assert.Equal(t, string(inventory.StatusLowStock), items[1].Status)
	assert.True(t, items[1].Deficit.Equal(decimal.NewFromInt(6)))
}

// Saldo negativo con mínimo cero: el piso manda, es out_of_stock.
func TestLowStock_SaldoNegativoConMinimoCero(t *testing.T) {
	s := newFakeStore()
	addMaterial(s, "mat-neg", "SKU-1", 0, true)
	addDelta(s, "mat-neg", -3)
	uc := newHealthUC(s)

	items, err := uc.LowStock(context.Background(), memberCtx())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, string(inventory.StatusOutOfStock), items[0].Status)
	assert.True(t, items[0].Deficit.Equal(decimal.NewFromInt(3)))
}

// En el umbral exacto el material sigue siendo low_stock, no in_stock.
func TestLowStock_EnElUmbralExacto(t *testing.T) {
	s := newFakeStore()
	addMaterial(s, "mat-a", "SKU-1", 5, true)
	addDelta(s, "mat-a", 5)
	uc := newHealthUC(s)

	items, err := uc.LowStock(context.Background(), memberCtx())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, string(inventory.StatusLowStock), items[0].Status)
	assert.True(t, items[0].Deficit.IsZero(), "en el umbral no hay déficit")
}

func TestLowStock_IgnoraMaterialesInactivos(t *testing.T) {
	s := newFakeStore()
	addMaterial(s, "mat-a", "SKU-1", 5, false)
	uc := newHealthUC(s)

	items, err := uc.LowStock(context.Background(), memberCtx())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHealth_CadaMaterialEnUnSoloBucket(t *testing.T) {
	s := newFakeStore()
	addMaterial(s, "mat-out", "SKU-1", 5, true)
	addMaterial(s, "mat-low", "SKU-2", 10, true)
	addMaterial(s, "mat-ok", "SKU-3", 3, true)
	addDelta(s, "mat-low", 4)
	addDelta(s, "mat-ok", 8)
	uc := newHealthUC(s)

	summary, err := uc.Health(context.Background(), memberCtx())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalMaterials)
	assert.Equal(t, 1, summary.OutOfStock)
	assert.Equal(t, 1, summary.LowStock)
	assert.Equal(t, 1, summary.InStock)
	assert.Equal(t, summary.TotalMaterials, summary.OutOfStock+summary.LowStock+summary.InStock)
	assert.True(t, summary.TotalQuantity.Equal(decimal.NewFromInt(12)))
}

func TestHealth_OrganizacionVacia(t *testing.T) {
	s := newFakeStore()
	uc := newHealthUC(s)

	summary, err := uc.Health(context.Background(), memberCtx())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalMaterials)
	assert.True(t, summary.TotalQuantity.IsZero())
}
