// Package usecase casos de uso de catálogo y organización: CRUD de
// organizaciones, materiales, ubicaciones y proveedores.
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

// OrgTxRunner ejecuta una función con repos de organización y membresía
// ligados a la misma transacción.
type OrgTxRunner interface {
	RunOrg(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		memberRepo repository.MembershipRepository,
	) error) error
}

// OrganizationUseCase creación, consulta y membresías de organizaciones.
type OrganizationUseCase struct {
	txRunner       OrgTxRunner
	orgRepo        repository.OrganizationRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(
	txRunner OrgTxRunner,
	orgRepo repository.OrganizationRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
) *OrganizationUseCase {
	return &OrganizationUseCase{
		txRunner:       txRunner,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// Create crea la organización y deja al creador como owner en la misma
// transacción: nunca existe una organización sin owner.
func (uc *OrganizationUseCase) Create(ctx context.Context, userID string, in dto.CreateOrganizationRequest) (*dto.OrganizationMembershipResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}

	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.RunOrg(ctx, func(
		orgRepo repository.OrganizationRepository,
		memberRepo repository.MembershipRepository,
	) error {
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		return memberRepo.Create(ctx, &entity.Membership{
			OrgID:     org.ID,
			UserID:    userID,
			Role:      entity.RoleOwner,
			CreatedAt: org.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.OrganizationMembershipResponse{
		Organization: toOrgResponse(org),
		Role:         entity.RoleOwner,
	}, nil
}

// ListMine devuelve las organizaciones donde el usuario tiene membresía,
// junto con su rol en cada una.
func (uc *OrganizationUseCase) ListMine(ctx context.Context, userID string) ([]dto.OrganizationMembershipResponse, error) {
	rows, err := uc.orgRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrganizationMembershipResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OrganizationMembershipResponse{
			Organization: toOrgResponse(&r.Organization),
			Role:         r.Role,
		})
	}
	return out, nil
}

// Get devuelve la organización del contexto autorizado.
func (uc *OrganizationUseCase) Get(ctx context.Context, actx *authz.Context) (*dto.OrganizationResponse, error) {
	org, err := uc.orgRepo.GetByID(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("%w: organización %s", domain.ErrNotFound, actx.OrgID)
	}
	resp := toOrgResponse(org)
	return &resp, nil
}

// AddMember incorpora un usuario existente a la organización con un rol.
// Nadie concede un rol de rango mayor al propio: un manager no crea owners.
func (uc *OrganizationUseCase) AddMember(ctx context.Context, actx *authz.Context, in dto.AddOrgMemberRequest) (*dto.OrgMemberResponse, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id es obligatorio", domain.ErrInvalidInput)
	}
	grantedRank, ok := entity.RoleRank(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	actorRank, _ := entity.RoleRank(actx.Role)
	if grantedRank > actorRank {
		return nil, fmt.Errorf("%w: no se puede conceder un rol superior al propio", domain.ErrForbidden)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}

	m := &entity.Membership{
		OrgID:     actx.OrgID,
		UserID:    userID,
		Role:      in.Role,
		CreatedAt: time.Now(),
	}
	if err := uc.membershipRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.OrgMemberResponse{UserID: m.UserID, Role: m.Role, CreatedAt: m.CreatedAt}, nil
}

// ListMembers devuelve los miembros de la organización con su rol.
func (uc *OrganizationUseCase) ListMembers(ctx context.Context, actx *authz.Context) ([]dto.OrgMemberResponse, error) {
	members, err := uc.membershipRepo.ListByOrg(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrgMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.OrgMemberResponse{UserID: m.UserID, Role: m.Role, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

func toOrgResponse(org *entity.Organization) dto.OrganizationResponse {
	return dto.OrganizationResponse{ID: org.ID, Name: org.Name, CreatedAt: org.CreatedAt}
}
