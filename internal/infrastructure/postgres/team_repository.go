package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

const teamColumns = `id, org_id, name, description, created_by, created_at, updated_at`

// TeamRepo implementación de TeamRepository sobre PostgreSQL (usable con pool o tx).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste un equipo.
func (r *TeamRepo) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (id, org_id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		team.ID, team.OrgID, team.Name, team.Description, team.CreatedBy, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo de la organización. Devuelve nil si no existe.
func (r *TeamRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE org_id = $1 AND id = $2`
	team, err := scanTeam(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

// ListByOrg lista los equipos de la organización, del más reciente al más antiguo.
func (r *TeamRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE org_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, team)
	}
	return list, rows.Err()
}

// AddMember registra la pertenencia de un usuario al equipo.
func (r *TeamRepo) AddMember(ctx context.Context, m *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, user_id, created_by, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, m.TeamID, m.UserID, m.CreatedBy, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el usuario ya integra el equipo", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: equipo o usuario inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// ListMembers lista los integrantes de un equipo en orden de incorporación.
func (r *TeamRepo) ListMembers(ctx context.Context, teamID string) ([]*entity.TeamMember, error) {
	query := `
		SELECT team_id, user_id, created_by, created_at
		FROM team_members WHERE team_id = $1 ORDER BY created_at, user_id`
	rows, err := r.q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()
	var list []*entity.TeamMember
	for rows.Next() {
		var m entity.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanTeam(row pgx.Row) (*entity.Team, error) {
	var t entity.Team
	err := row.Scan(&t.ID, &t.OrgID, &t.Name, &t.Description, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
