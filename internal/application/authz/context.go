// Package authz resuelve el contexto de autorización (organización, actor,
// rol) y expone la comparación por rango que protege toda operación mutante.
package authz

import (
	"context"
	"fmt"

	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// Context (org, actor, rol) ya resuelto para una petición.
type Context struct {
	OrgID  string
	UserID string
	Role   string
}

// RequireMinRole compara por rango: el rol del actor debe ser >= al mínimo.
// Devuelve ErrForbidden nombrando el rol requerido si el rango no alcanza.
func (c *Context) RequireMinRole(minRole string) error {
	actorRank, ok := entity.RoleRank(c.Role)
	if !ok {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrForbidden, c.Role)
	}
	requiredRank, ok := entity.RoleRank(minRole)
	if !ok {
		return fmt.Errorf("%w: rol mínimo desconocido %q", domain.ErrForbidden, minRole)
	}
	if actorRank < requiredRank {
		return fmt.Errorf("%w: la operación requiere rol %s o superior", domain.ErrForbidden, minRole)
	}
	return nil
}

// Resolver resuelve la pertenencia de un usuario a una organización.
type Resolver struct {
	membershipRepo repository.MembershipRepository
}

// NewResolver construye el resolver.
func NewResolver(membershipRepo repository.MembershipRepository) *Resolver {
	return &Resolver{membershipRepo: membershipRepo}
}

// Resolve carga la membresía y devuelve el contexto de autorización.
// Sin membresía: ErrUnauthorized (el usuario no pertenece a la organización).
func (r *Resolver) Resolve(ctx context.Context, orgID, userID string) (*Context, error) {
	if orgID == "" || userID == "" {
		return nil, fmt.Errorf("%w: organización o usuario vacío", domain.ErrInvalidInput)
	}
	m, err := r.membershipRepo.Get(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: el usuario no pertenece a la organización", domain.ErrUnauthorized)
	}
	return &Context{OrgID: orgID, UserID: userID, Role: m.Role}, nil
}
