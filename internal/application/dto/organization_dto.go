package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
// El usuario creador queda como owner en la misma transacción.
type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=160"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationMembershipResponse organización junto con el rol del usuario.
type OrganizationMembershipResponse struct {
	Organization OrganizationResponse `json:"organization"`
	Role         string               `json:"role"`
}

// AddOrgMemberRequest entrada para incorporar un usuario existente a la
// organización con un rol.
type AddOrgMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Role   string `json:"role" validate:"required,oneof=viewer member manager owner"`
}

// OrgMemberResponse miembro de la organización con su rol.
type OrgMemberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
