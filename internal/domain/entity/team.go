package entity

import "time"

// Team grupo de trabajo dentro de una organización. No otorga permisos:
// el rol sigue viviendo en la membresía de organización.
type Team struct {
	ID          string
	OrgID       string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember pertenencia de un usuario a un equipo. Solo pueden integrarlo
// usuarios que ya son miembros de la organización.
type TeamMember struct {
	TeamID    string
	UserID    string
	CreatedBy string
	CreatedAt time.Time
}
