package entity

import "time"

// Supplier proveedor al que se emiten órdenes de compra.
type Supplier struct {
	ID           string
	OrgID        string
	Name         string
	Email        string
	Phone        string
	LeadTimeDays int
	PaymentTerms string
	IsActive     bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
