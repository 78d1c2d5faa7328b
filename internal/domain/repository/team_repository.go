package repository

import (
	"context"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// TeamRepository define el puerto de persistencia para Team (DIP).
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	// GetByID devuelve nil sin error cuando el equipo no existe en la organización.
	GetByID(ctx context.Context, orgID, id string) (*entity.Team, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Team, error)
	AddMember(ctx context.Context, m *entity.TeamMember) error
	ListMembers(ctx context.Context, teamID string) ([]*entity.TeamMember, error)
}
