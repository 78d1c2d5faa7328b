package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

const (
	testOrg  = "org-1"
	testUser = "user-1"
)

func managerCtx() *authz.Context {
	return &authz.Context{OrgID: testOrg, UserID: testUser, Role: entity.RoleManager}
}

func ownerCtx() *authz.Context {
	return &authz.Context{OrgID: testOrg, UserID: testUser, Role: entity.RoleOwner}
}

// orgStore estado en memoria compartido por los repositorios de test.
// Los repos devuelven copias para imitar el comportamiento de un scan de BD.
type orgStore struct {
	orgs        map[string]entity.Organization
	memberships map[string]entity.Membership // "orgID/userID"
	users       map[string]entity.User
	teams       map[string]entity.Team
	teamMembers map[string][]entity.TeamMember // por teamID
}

func newOrgStore() *orgStore {
	return &orgStore{
		orgs:        map[string]entity.Organization{},
		memberships: map[string]entity.Membership{},
		users:       map[string]entity.User{},
		teams:       map[string]entity.Team{},
		teamMembers: map[string][]entity.TeamMember{},
	}
}

func (s *orgStore) clone() *orgStore {
	c := newOrgStore()
	for k, v := range s.orgs {
		c.orgs[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.teams {
		c.teams[k] = v
	}
	for k, v := range s.teamMembers {
		c.teamMembers[k] = append([]entity.TeamMember(nil), v...)
	}
	return c
}

func (s *orgStore) replaceWith(other *orgStore) {
	s.orgs = other.orgs
	s.memberships = other.memberships
	s.users = other.users
	s.teams = other.teams
	s.teamMembers = other.teamMembers
}

// ── repos ─────────────────────────────────────────────────────────────────────

type fakeOrgRepo struct{ s *orgStore }

func (r *fakeOrgRepo) Create(_ context.Context, org *entity.Organization) error {
	r.s.orgs[org.ID] = *org
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	org, ok := r.s.orgs[id]
	if !ok {
		return nil, nil
	}
	cp := org
	return &cp, nil
}

func (r *fakeOrgRepo) ListByUser(_ context.Context, userID string) ([]repository.OrganizationWithRole, error) {
	var out []repository.OrganizationWithRole
	for key, m := range r.s.memberships {
		if !strings.HasSuffix(key, "/"+userID) {
			continue
		}
		if org, ok := r.s.orgs[m.OrgID]; ok {
			out = append(out, repository.OrganizationWithRole{Organization: org, Role: m.Role})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Organization.ID < out[j].Organization.ID })
	return out, nil
}

type fakeMembershipRepo struct{ s *orgStore }

func (r *fakeMembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	key := m.OrgID + "/" + m.UserID
	if _, exists := r.s.memberships[key]; exists {
		return domain.ErrDuplicate
	}
	r.s.memberships[key] = *m
	return nil
}

func (r *fakeMembershipRepo) Get(_ context.Context, orgID, userID string) (*entity.Membership, error) {
	m, ok := r.s.memberships[orgID+"/"+userID]
	if !ok {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *fakeMembershipRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for _, m := range r.s.memberships {
		if m.OrgID == orgID {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeUserRepo struct{ s *orgStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTeamRepo struct{ s *orgStore }

func (r *fakeTeamRepo) Create(_ context.Context, team *entity.Team) error {
	r.s.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, orgID, id string) (*entity.Team, error) {
	team, ok := r.s.teams[id]
	if !ok || team.OrgID != orgID {
		return nil, nil
	}
	cp := team
	return &cp, nil
}

func (r *fakeTeamRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Team, error) {
	var out []*entity.Team
	for _, team := range r.s.teams {
		if team.OrgID == orgID {
			cp := team
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, m *entity.TeamMember) error {
	for _, existing := range r.s.teamMembers[m.TeamID] {
		if existing.UserID == m.UserID {
			return domain.ErrDuplicate
		}
	}
	r.s.teamMembers[m.TeamID] = append(r.s.teamMembers[m.TeamID], *m)
	return nil
}

func (r *fakeTeamRepo) ListMembers(_ context.Context, teamID string) ([]*entity.TeamMember, error) {
	var out []*entity.TeamMember
	for i := range r.s.teamMembers[teamID] {
		cp := r.s.teamMembers[teamID][i]
		out = append(out, &cp)
	}
	return out, nil
}

// fakeOrgTxRunner imita Commit/Rollback: ejecuta fn sobre una copia del estado
// y solo la publica si fn termina sin error.
type fakeOrgTxRunner struct{ s *orgStore }

func (t *fakeOrgTxRunner) RunOrg(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MembershipRepository,
) error) error {
	working := t.s.clone()
	if err := fn(&fakeOrgRepo{s: working}, &fakeMembershipRepo{s: working}); err != nil {
		return err
	}
	t.s.replaceWith(working)
	return nil
}

func (t *fakeOrgTxRunner) RunTeam(ctx context.Context, fn func(teamRepo repository.TeamRepository) error) error {
	working := t.s.clone()
	if err := fn(&fakeTeamRepo{s: working}); err != nil {
		return err
	}
	t.s.replaceWith(working)
	return nil
}
