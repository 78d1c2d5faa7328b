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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL (usable con pool o tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, org.ID, org.Name, org.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `SELECT id, name, created_at FROM organizations WHERE id = $1`
	var org entity.Organization
	err := r.q.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}

// ListByUser lista las organizaciones donde el usuario tiene membresía, con su rol.
func (r *OrganizationRepo) ListByUser(ctx context.Context, userID string) ([]repository.OrganizationWithRole, error) {
	query := `
		SELECT o.id, o.name, o.created_at, m.role
		FROM organizations o
		JOIN org_users m ON m.org_id = o.id
		WHERE m.user_id = $1
		ORDER BY o.created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizations by user: %w", err)
	}
	defer rows.Close()
	var list []repository.OrganizationWithRole
	for rows.Next() {
		var row repository.OrganizationWithRole
		if err := rows.Scan(&row.Organization.ID, &row.Organization.Name, &row.Organization.CreatedAt, &row.Role); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
