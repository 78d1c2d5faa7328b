package repository

import (
	"context"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// MembershipRepository define el puerto de persistencia para Membership (DIP).
// Get devuelve nil (sin error) cuando el usuario no pertenece a la organización.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	Get(ctx context.Context, orgID, userID string) (*entity.Membership, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Membership, error)
}
