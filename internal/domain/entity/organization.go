package entity

import "time"

// Organization es la frontera multi-tenant: toda entidad del sistema pertenece
// a una organización y el acceso cruzado entre organizaciones es siempre un error.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
