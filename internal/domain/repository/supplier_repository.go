package repository

import (
	"context"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Supplier, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]*entity.Supplier, int, error)
}
