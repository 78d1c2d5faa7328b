package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// MaterialUseCase CRUD de materiales. La cantidad en existencia no se toca
// aquí: solo la modifica el ledger de movimientos.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo}
}

// Create da de alta un material activo. SKU y nombre son obligatorios,
// min_stock no puede ser negativo y la unidad por defecto es "unit".
// El repo devuelve ErrDuplicate si el SKU ya existe en la organización.
func (uc *MaterialUseCase) Create(ctx context.Context, actx *authz.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	uom := strings.TrimSpace(in.UOM)
	if uom == "" {
		uom = "unit"
	}

	now := time.Now()
	m := &entity.Material{
		ID:          uuid.New().String(),
		OrgID:       actx.OrgID,
		SKU:         sku,
		Name:        name,
		Description: in.Description,
		UOM:         uom,
		MinStock:    in.MinStock,
		IsActive:    true,
		CreatedBy:   actx.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.materialRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

// Get devuelve un material de la organización.
func (uc *MaterialUseCase) Get(ctx context.Context, actx *authz.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(ctx, actx.OrgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

// List lista materiales con búsqueda por texto y paginación.
func (uc *MaterialUseCase) List(ctx context.Context, actx *authz.Context, q string, page dto.PageRequest) (*dto.MaterialListResponse, error) {
	page.DefaultPage()
	materials, total, err := uc.materialRepo.List(ctx, actx.OrgID, q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update modifica los campos editables del material. El SKU no cambia.
func (uc *MaterialUseCase) Update(ctx context.Context, actx *authz.Context, id string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(ctx, actx.OrgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	if in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		m.Name = name
	}
	if in.Description != "" {
		m.Description = in.Description
	}
	if uom := strings.TrimSpace(in.UOM); uom != "" {
		m.UOM = uom
	}
	m.MinStock = in.MinStock
	m.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

// Deactivate marca el material como inactivo. El historial del ledger se
// conserva; el material deja de aparecer en reportes y alertas.
func (uc *MaterialUseCase) Deactivate(ctx context.Context, actx *authz.Context, id string) error {
	m, err := uc.materialRepo.GetByID(ctx, actx.OrgID, id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	return uc.materialRepo.SetActive(ctx, actx.OrgID, id, false)
}

func toMaterialResponse(m *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:          m.ID,
		OrgID:       m.OrgID,
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		UOM:         m.UOM,
		MinStock:    m.MinStock,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
