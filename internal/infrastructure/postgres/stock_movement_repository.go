package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y agrega: la tabla no tiene UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create añade un movimiento al ledger.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, org_id, material_id, location_id, quantity_delta, reason, note, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OrgID, m.MaterialID, m.LocationID, m.QuantityDelta, m.Reason,
		m.Note, nullIfEmpty(m.ReferenceType), nullIfEmpty(m.ReferenceID), m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// SumForMaterial suma los deltas del material; locationID vacío agrega todas
// las ubicaciones. COALESCE garantiza cero cuando no hay movimientos.
// location_id es uuid: se castea a texto porque el parámetro comodín ''
// fija el tipo de $3 como texto en el parse de la consulta.
func (r *StockMovementRepo) SumForMaterial(ctx context.Context, orgID, materialID, locationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity_delta), 0)
		FROM stock_movements
		WHERE org_id = $1 AND material_id = $2 AND ($3 = '' OR location_id::text = $3)`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, orgID, materialID, locationID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

// TotalsByMaterial existencia total por material de la organización.
func (r *StockMovementRepo) TotalsByMaterial(ctx context.Context, orgID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT material_id, SUM(quantity_delta)
		FROM stock_movements WHERE org_id = $1 GROUP BY material_id`
	rows, err := r.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("totals by material: %w", err)
	}
	defer rows.Close()
	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var materialID string
		var total decimal.Decimal
		if err := rows.Scan(&materialID, &total); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals[materialID] = total
	}
	return totals, rows.Err()
}

// ListByMaterial historial de movimientos de un material, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByMaterial(ctx context.Context, orgID, materialID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM stock_movements WHERE org_id = $1 AND material_id = $2`
	if err := r.q.QueryRow(ctx, countQuery, orgID, materialID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `
		SELECT id, org_id, material_id, location_id, quantity_delta, reason, note,
		       COALESCE(reference_type, ''), COALESCE(reference_id::text, ''), created_by, created_at
		FROM stock_movements
		WHERE org_id = $1 AND material_id = $2
		ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, orgID, materialID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.OrgID, &m.MaterialID, &m.LocationID, &m.QuantityDelta, &m.Reason,
			&m.Note, &m.ReferenceType, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// nullIfEmpty convierte cadena vacía en NULL para columnas opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
