package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// fakeMembershipRepo repositorio en memoria para los tests.
type fakeMembershipRepo struct {
	memberships map[string]*entity.Membership // key: orgID + "/" + userID
}

func (f *fakeMembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	f.memberships[m.OrgID+"/"+m.UserID] = m
	return nil
}

func (f *fakeMembershipRepo) Get(_ context.Context, orgID, userID string) (*entity.Membership, error) {
	return f.memberships[orgID+"/"+userID], nil
}

func (f *fakeMembershipRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for _, m := range f.memberships {
		if m.OrgID == orgID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newResolver(role string) *authz.Resolver {
	repo := &fakeMembershipRepo{memberships: map[string]*entity.Membership{
		"org-1/user-1": {OrgID: "org-1", UserID: "user-1", Role: role},
	}}
	return authz.NewResolver(repo)
}

func TestResolve_MiembroExistente(t *testing.T) {
	r := newResolver(entity.RoleManager)
	actx, err := r.Resolve(context.Background(), "org-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "org-1", actx.OrgID)
	assert.Equal(t, entity.RoleManager, actx.Role)
}

// Sin membresía el error es Unauthorized, nunca un resultado vacío filtrado.
func TestResolve_SinMembresia(t *testing.T) {
	r := newResolver(entity.RoleManager)
	_, err := r.Resolve(context.Background(), "org-2", "user-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = r.Resolve(context.Background(), "org-1", "user-9")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// La comparación es por rango, no por igualdad de rol.
func TestRequireMinRole_Rangos(t *testing.T) {
	cases := []struct {
		actor, min string
		allowed    bool
	}{
		{entity.RoleViewer, entity.RoleViewer, true},
		{entity.RoleViewer, entity.RoleMember, false},
		{entity.RoleMember, entity.RoleMember, true},
		{entity.RoleMember, entity.RoleManager, false},
		{entity.RoleManager, entity.RoleMember, true},
		{entity.RoleManager, entity.RoleManager, true},
		{entity.RoleOwner, entity.RoleManager, true},
		{entity.RoleOwner, entity.RoleOwner, true},
	}
	for _, tc := range cases {
		actx := &authz.Context{OrgID: "org-1", UserID: "user-1", Role: tc.actor}
		err := actx.RequireMinRole(tc.min)
		if tc.allowed {
			assert.NoError(t, err, "%s debe satisfacer mínimo %s", tc.actor, tc.min)
		} else {
			assert.ErrorIs(t, err, domain.ErrForbidden, "%s no debe satisfacer mínimo %s", tc.actor, tc.min)
		}
	}
}

func TestRequireMinRole_RolDesconocido(t *testing.T) {
	actx := &authz.Context{OrgID: "org-1", UserID: "user-1", Role: "superadmin"}
	assert.ErrorIs(t, actx.RequireMinRole(entity.RoleViewer), domain.ErrForbidden)
}
