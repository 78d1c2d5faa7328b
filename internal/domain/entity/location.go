package entity

import "time"

// Location dimensión de ubicación para los saldos de inventario
// (bodega, estantería, zona). El código es opcional.
type Location struct {
	ID        string
	OrgID     string
	Code      string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}
