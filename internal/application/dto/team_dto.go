package dto

import "time"

// CreateTeamRequest entrada para crear un equipo.
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=600"`
}

// AddTeamMemberRequest entrada para sumar un integrante al equipo.
// El usuario debe ser miembro de la organización.
type AddTeamMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// TeamResponse salida de un equipo con los IDs de sus integrantes.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	MemberIDs   []string  `json:"member_ids"`
}

// TeamListResponse lista de equipos de la organización.
type TeamListResponse struct {
	Total int            `json:"total"`
	Items []TeamResponse `json:"items"`
}

// TeamMemberResponse salida de una pertenencia a equipo.
type TeamMemberResponse struct {
	TeamID    string    `json:"team_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
