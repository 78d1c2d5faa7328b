package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

const (
	maxTeamNameLen        = 120
	maxTeamDescriptionLen = 600
)

// TeamTxRunner ejecuta una función con el repo de equipos ligado a una
// transacción.
type TeamTxRunner interface {
	RunTeam(ctx context.Context, fn func(teamRepo repository.TeamRepository) error) error
}

// TeamUseCase equipos de trabajo dentro de la organización.
type TeamUseCase struct {
	txRunner       TeamTxRunner
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(txRunner TeamTxRunner, teamRepo repository.TeamRepository, membershipRepo repository.MembershipRepository) *TeamUseCase {
	return &TeamUseCase{txRunner: txRunner, teamRepo: teamRepo, membershipRepo: membershipRepo}
}

// Create crea el equipo y deja al creador como primer integrante en la misma
// transacción.
func (uc *TeamUseCase) Create(ctx context.Context, actx *authz.Context, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxTeamNameLen {
		return nil, fmt.Errorf("%w: el nombre supera %d caracteres", domain.ErrInvalidInput, maxTeamNameLen)
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > maxTeamDescriptionLen {
		return nil, fmt.Errorf("%w: la descripción supera %d caracteres", domain.ErrInvalidInput, maxTeamDescriptionLen)
	}

	now := time.Now()
	team := &entity.Team{
		ID:          uuid.New().String(),
		OrgID:       actx.OrgID,
		Name:        name,
		Description: description,
		CreatedBy:   actx.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.RunTeam(ctx, func(teamRepo repository.TeamRepository) error {
		if err := teamRepo.Create(ctx, team); err != nil {
			return err
		}
		return teamRepo.AddMember(ctx, &entity.TeamMember{
			TeamID:    team.ID,
			UserID:    actx.UserID,
			CreatedBy: actx.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toTeamResponse(team, []string{actx.UserID})
	return &resp, nil
}

// List devuelve los equipos de la organización con sus integrantes,
// del más reciente al más antiguo.
func (uc *TeamUseCase) List(ctx context.Context, actx *authz.Context) (*dto.TeamListResponse, error) {
	teams, err := uc.teamRepo.ListByOrg(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TeamResponse, 0, len(teams))
	for _, team := range teams {
		members, err := uc.teamRepo.ListMembers(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.UserID)
		}
		items = append(items, toTeamResponse(team, ids))
	}
	return &dto.TeamListResponse{Total: len(items), Items: items}, nil
}

// AddMember suma un integrante al equipo. El usuario tiene que ser ya miembro
// de la organización; la pertenencia al equipo no reparte roles.
func (uc *TeamUseCase) AddMember(ctx context.Context, actx *authz.Context, teamID string, in dto.AddTeamMemberRequest) (*dto.TeamMemberResponse, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id es obligatorio", domain.ErrInvalidInput)
	}

	membership, err := uc.membershipRepo.Get(ctx, actx.OrgID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("%w: el usuario no es miembro de la organización", domain.ErrInvalidInput)
	}

	team, err := uc.teamRepo.GetByID(ctx, actx.OrgID, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("%w: equipo %s", domain.ErrNotFound, teamID)
	}

	member := &entity.TeamMember{
		TeamID:    team.ID,
		UserID:    userID,
		CreatedBy: actx.UserID,
		CreatedAt: time.Now(),
	}
	if err := uc.teamRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return &dto.TeamMemberResponse{TeamID: member.TeamID, UserID: member.UserID, CreatedAt: member.CreatedAt}, nil
}

func toTeamResponse(team *entity.Team, memberIDs []string) dto.TeamResponse {
	return dto.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedAt:   team.CreatedAt,
		MemberIDs:   memberIDs,
	}
}
