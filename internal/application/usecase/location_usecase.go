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

// LocationUseCase alta y consulta de ubicaciones.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create da de alta una ubicación. El código es opcional.
func (uc *LocationUseCase) Create(ctx context.Context, actx *authz.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	l := &entity.Location{
		ID:        uuid.New().String(),
		OrgID:     actx.OrgID,
		Code:      strings.TrimSpace(in.Code),
		Name:      name,
		CreatedBy: actx.UserID,
		CreatedAt: time.Now(),
	}
	if err := uc.locationRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	resp := toLocationResponse(l)
	return &resp, nil
}

// List lista las ubicaciones de la organización.
func (uc *LocationUseCase) List(ctx context.Context, actx *authz.Context, page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	locations, total, err := uc.locationRepo.List(ctx, actx.OrgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		items = append(items, toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:        l.ID,
		OrgID:     l.OrgID,
		Code:      l.Code,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
}
