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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, org_id, name, email, phone, lead_time_days, payment_terms, is_active, created_by, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, sp *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, org_id, name, email, phone, lead_time_days, payment_terms, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		sp.ID, sp.OrgID, sp.Name, sp.Email, sp.Phone, sp.LeadTimeDays,
		sp.PaymentTerms, sp.IsActive, sp.CreatedBy, sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor de la organización. Devuelve nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE org_id = $1 AND id = $2`
	var sp entity.Supplier
	err := r.q.QueryRow(ctx, query, orgID, id).Scan(
		&sp.ID, &sp.OrgID, &sp.Name, &sp.Email, &sp.Phone, &sp.LeadTimeDays,
		&sp.PaymentTerms, &sp.IsActive, &sp.CreatedBy, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &sp, nil
}

// List lista los proveedores de la organización con paginación.
func (r *SupplierRepo) List(ctx context.Context, orgID string, limit, offset int) ([]*entity.Supplier, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers WHERE org_id = $1`, orgID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE org_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var sp entity.Supplier
		if err := rows.Scan(
			&sp.ID, &sp.OrgID, &sp.Name, &sp.Email, &sp.Phone, &sp.LeadTimeDays,
			&sp.PaymentTerms, &sp.IsActive, &sp.CreatedBy, &sp.CreatedAt, &sp.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &sp)
	}
	return list, total, rows.Err()
}
