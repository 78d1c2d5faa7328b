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

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create da de alta un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, actx *authz.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.LeadTimeDays < 0 {
		return nil, fmt.Errorf("%w: lead_time_days no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	sp := &entity.Supplier{
		ID:           uuid.New().String(),
		OrgID:        actx.OrgID,
		Name:         name,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		LeadTimeDays: in.LeadTimeDays,
		PaymentTerms: in.PaymentTerms,
		IsActive:     true,
		CreatedBy:    actx.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.supplierRepo.Create(ctx, sp); err != nil {
		return nil, err
	}
	resp := toSupplierResponse(sp)
	return &resp, nil
}

// Get devuelve un proveedor de la organización.
func (uc *SupplierUseCase) Get(ctx context.Context, actx *authz.Context, id string) (*dto.SupplierResponse, error) {
	sp, err := uc.supplierRepo.GetByID(ctx, actx.OrgID, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	resp := toSupplierResponse(sp)
	return &resp, nil
}

// List lista los proveedores de la organización.
func (uc *SupplierUseCase) List(ctx context.Context, actx *authz.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	suppliers, total, err := uc.supplierRepo.List(ctx, actx.OrgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, sp := range suppliers {
		items = append(items, toSupplierResponse(sp))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toSupplierResponse(sp *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           sp.ID,
		OrgID:        sp.OrgID,
		Name:         sp.Name,
		Email:        sp.Email,
		Phone:        sp.Phone,
		LeadTimeDays: sp.LeadTimeDays,
		PaymentTerms: sp.PaymentTerms,
		IsActive:     sp.IsActive,
		CreatedAt:    sp.CreatedAt,
	}
}
