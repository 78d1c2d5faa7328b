package repository

import (
	"context"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Todas las consultas están acotadas por organización: un ID de otra
// organización se comporta como inexistente.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	SetActive(ctx context.Context, orgID, id string, active bool) error
	// List busca por nombre o SKU (q opcional) con paginación; devuelve también el total.
	List(ctx context.Context, orgID, q string, limit, offset int) ([]*entity.Material, int, error)
	ListActive(ctx context.Context, orgID string) ([]*entity.Material, error)
}
