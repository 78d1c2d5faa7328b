package entity

import "time"

// Roles de organización, en orden total de menor a mayor privilegio.
const (
	RoleViewer  = "viewer"
	RoleMember  = "member"
	RoleManager = "manager"
	RoleOwner   = "owner"
)

// roleRanks asigna el rango numérico de cada rol. La comparación de permisos
// es siempre por rango (actor >= mínimo requerido), nunca por pertenencia a un set.
var roleRanks = map[string]int{
	RoleViewer:  0,
	RoleMember:  1,
	RoleManager: 2,
	RoleOwner:   3,
}

// RoleRank devuelve el rango de un rol y si el rol es conocido.
func RoleRank(role string) (int, bool) {
	rank, ok := roleRanks[role]
	return rank, ok
}

// Membership vincula un usuario con una organización y su rol dentro de ella.
type Membership struct {
	OrgID     string
	UserID    string
	Role      string
	CreatedAt time.Time
}
