package repository

import (
	"context"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Location, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]*entity.Location, int, error)
}
