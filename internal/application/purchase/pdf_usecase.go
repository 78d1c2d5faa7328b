package purchase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// POPDFUseCase genera el documento PDF de una orden (para enviarla al proveedor).
type POPDFUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	lineRepo     repository.PurchaseOrderLineRepository
	supplierRepo repository.SupplierRepository
	materialRepo repository.MaterialRepository
	orgRepo      repository.OrganizationRepository
	generator    POPDFGenerator
}

// NewPOPDFUseCase construye el caso de uso.
func NewPOPDFUseCase(
	poRepo repository.PurchaseOrderRepository,
	lineRepo repository.PurchaseOrderLineRepository,
	supplierRepo repository.SupplierRepository,
	materialRepo repository.MaterialRepository,
	orgRepo repository.OrganizationRepository,
	generator POPDFGenerator,
) *POPDFUseCase {
	return &POPDFUseCase{
		poRepo:       poRepo,
		lineRepo:     lineRepo,
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
		orgRepo:      orgRepo,
		generator:    generator,
	}
}

// Generate arma los datos de la orden (cabecera, proveedor, líneas con
// material) y delega el render en el generador.
func (uc *POPDFUseCase) Generate(ctx context.Context, actx *authz.Context, poID string) ([]byte, error) {
	po, err := uc.poRepo.GetByID(ctx, actx.OrgID, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, poID)
	}
	org, err := uc.orgRepo.GetByID(ctx, actx.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("%w: organización %s", domain.ErrNotFound, actx.OrgID)
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, actx.OrgID, po.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, po.SupplierID)
	}
	lines, err := uc.lineRepo.ListByOrder(ctx, actx.OrgID, po.ID)
	if err != nil {
		return nil, err
	}

	pdfLines := make([]POLineForPDF, 0, len(lines))
	for _, l := range lines {
		material, err := uc.materialRepo.GetByID(ctx, actx.OrgID, l.MaterialID)
		if err != nil {
			return nil, err
		}
		item := POLineForPDF{Line: l, LineTotal: decimal.Zero}
		if material != nil {
			item.MaterialSKU = material.SKU
			item.MaterialName = material.Name
		}
		if l.UnitPrice != nil {
			item.LineTotal = l.QuantityOrdered.Mul(*l.UnitPrice)
		}
		pdfLines = append(pdfLines, item)
	}
	return uc.generator.GeneratePOPDF(ctx, po, org, supplier, pdfLines)
}
