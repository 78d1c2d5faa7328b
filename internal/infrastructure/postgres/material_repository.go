package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, org_id, sku, name, description, uom, min_stock, is_active, created_by, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.OrgID, &m.SKU, &m.Name, &m.Description, &m.UOM,
		&m.MinStock, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un nuevo material. Devuelve ErrDuplicate si el SKU ya existe
// en la organización.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, org_id, sku, name, description, uom, min_stock, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OrgID, m.SKU, m.Name, m.Description, m.UOM,
		m.MinStock, m.IsActive, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material de la organización. Devuelve nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE org_id = $1 AND id = $2`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// Update actualiza los campos editables del material. El SKU no cambia.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $3, description = $4, uom = $5, min_stock = $6, updated_at = $7
		WHERE org_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, m.OrgID, m.ID, m.Name, m.Description, m.UOM, m.MinStock, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// SetActive activa o desactiva el material.
func (r *MaterialRepo) SetActive(ctx context.Context, orgID, id string, active bool) error {
	query := `UPDATE materials SET is_active = $3, updated_at = now() WHERE org_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, orgID, id, active)
	if err != nil {
		return fmt.Errorf("set material active: %w", err)
	}
	return nil
}

// List lista materiales de la organización con búsqueda por SKU o nombre y paginación.
func (r *MaterialRepo) List(ctx context.Context, orgID, q string, limit, offset int) ([]*entity.Material, int, error) {
	pattern := "%" + q + "%"
	var total int
	countQuery := `
		SELECT count(*) FROM materials
		WHERE org_id = $1 AND ($2 = '%%' OR sku ILIKE $2 OR name ILIKE $2)`
	if err := r.q.QueryRow(ctx, countQuery, orgID, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}

	query := `
		SELECT ` + materialColumns + ` FROM materials
		WHERE org_id = $1 AND ($2 = '%%' OR sku ILIKE $2 OR name ILIKE $2)
		ORDER BY sku LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, orgID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListActive lista los materiales activos de la organización, ordenados por SKU.
func (r *MaterialRepo) ListActive(ctx context.Context, orgID string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE org_id = $1 AND is_active ORDER BY sku`
	rows, err := r.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list active materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
