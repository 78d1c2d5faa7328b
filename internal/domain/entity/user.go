package entity

import "time"

// User cuenta de acceso. La pertenencia a organizaciones y el rol viven en
// Membership; el usuario por sí solo no tiene permisos.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
