package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento de stock.
const (
	ReasonAdjustment      = "adjustment"
	ReasonTransferIn      = "transfer_in"
	ReasonTransferOut     = "transfer_out"
	ReasonPurchaseReceive = "purchase_receive"
	ReasonCorrection      = "correction"
)

// ValidMovementReason indica si el motivo es uno de los permitidos.
func ValidMovementReason(reason string) bool {
	switch reason {
	case ReasonAdjustment, ReasonTransferIn, ReasonTransferOut, ReasonPurchaseReceive, ReasonCorrection:
		return true
	}
	return false
}

// StockMovement registro inmutable del ledger: delta de cantidad con signo
// para un (material, ubicación). Los movimientos nunca se editan ni se borran;
// un error se compensa con un movimiento nuevo con motivo correction.
// Invariante: QuantityDelta != 0.
type StockMovement struct {
	ID            string
	OrgID         string
	MaterialID    string
	LocationID    string
	QuantityDelta decimal.Decimal
	Reason        string
	Note          string
	ReferenceType string // ej. "purchase_order"
	ReferenceID   string
	CreatedBy     string
	CreatedAt     time.Time
}
