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

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación de MembershipRepository sobre PostgreSQL (usable con pool o tx).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create persiste una membresía (org_id, user_id) con su rol.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `INSERT INTO org_users (org_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, m.OrgID, m.UserID, m.Role, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Get obtiene la membresía de un usuario en una organización.
// Devuelve nil sin error cuando el usuario no pertenece a ella.
func (r *MembershipRepo) Get(ctx context.Context, orgID, userID string) (*entity.Membership, error) {
	query := `SELECT org_id, user_id, role, created_at FROM org_users WHERE org_id = $1 AND user_id = $2`
	var m entity.Membership
	err := r.q.QueryRow(ctx, query, orgID, userID).Scan(&m.OrgID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListByOrg lista las membresías de una organización.
func (r *MembershipRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Membership, error) {
	query := `SELECT org_id, user_id, role, created_at FROM org_users WHERE org_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.OrgID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
