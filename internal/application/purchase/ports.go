package purchase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que una recepción (líneas + estado +
// movimientos del ledger) se aplica completa o no se aplica en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		lineRepo repository.PurchaseOrderLineRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// POLineForPDF línea enriquecida con los datos del material para el documento.
type POLineForPDF struct {
	Line         *entity.PurchaseOrderLine
	MaterialSKU  string
	MaterialName string
	LineTotal    decimal.Decimal
}

// POPDFGenerator genera el documento PDF de una orden de compra.
type POPDFGenerator interface {
	GeneratePOPDF(
		ctx context.Context,
		po *entity.PurchaseOrder,
		org *entity.Organization,
		supplier *entity.Supplier,
		lines []POLineForPDF,
	) ([]byte, error)
}
