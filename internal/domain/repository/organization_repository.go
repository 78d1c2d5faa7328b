package repository

import (
	"context"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// OrganizationWithRole organización junto con el rol del usuario consultante.
type OrganizationWithRole struct {
	Organization entity.Organization
	Role         string
}

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	ListByUser(ctx context.Context, userID string) ([]OrganizationWithRole, error)
}
