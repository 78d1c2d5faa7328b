package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
var _ repository.PurchaseOrderLineRepository = (*PurchaseOrderLineRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, org_id, supplier_id, po_number, status, currency, expected_at, notes, created_by, created_at, updated_at`

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(
		&po.ID, &po.OrgID, &po.SupplierID, &po.PONumber, &po.Status, &po.Currency,
		&po.ExpectedAt, &po.Notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Create persiste una nueva orden. Devuelve ErrDuplicate si el po_number ya
// existe en la organización.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, org_id, supplier_id, po_number, status, currency, expected_at, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.OrgID, po.SupplierID, po.PONumber, po.Status, po.Currency,
		po.ExpectedAt, po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: po_number %s", domain.ErrDuplicate, po.PONumber)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de la organización. Devuelve nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, orgID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE org_id = $1 AND id = $2`
	po, err := scanPO(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE) para
// serializar recepciones y transiciones concurrentes.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE org_id = $1 AND id = $2 FOR UPDATE`
	po, err := scanPO(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	return po, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, orgID, id, status string) error {
	query := `UPDATE purchase_orders SET status = $3, updated_at = now() WHERE org_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, orgID, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// List lista las órdenes de la organización con filtros y paginación.
func (r *PurchaseOrderRepo) List(ctx context.Context, orgID string, filter repository.POFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	status := filter.Status
	if status == "all" {
		status = ""
	}
	pattern := "%" + filter.Q + "%"

	var total int
	countQuery := `
		SELECT count(*) FROM purchase_orders
		WHERE org_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR supplier_id::text = $3)
		  AND ($4 = '%%' OR po_number ILIKE $4)`
	if err := r.q.QueryRow(ctx, countQuery, orgID, status, filter.SupplierID, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := `
		SELECT ` + poColumns + ` FROM purchase_orders
		WHERE org_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR supplier_id::text = $3)
		  AND ($4 = '%%' OR po_number ILIKE $4)
		ORDER BY created_at DESC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, orgID, status, filter.SupplierID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, total, rows.Err()
}

// PurchaseOrderLineRepo implementación de PurchaseOrderLineRepository sobre PostgreSQL.
type PurchaseOrderLineRepo struct {
	q Querier
}

// NewPurchaseOrderLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderLineRepository(q Querier) *PurchaseOrderLineRepo {
	return &PurchaseOrderLineRepo{q: q}
}

const poLineColumns = `id, org_id, purchase_order_id, material_id, quantity_ordered, quantity_received, unit_price, created_at`

func scanPOLine(row pgx.Row) (*entity.PurchaseOrderLine, error) {
	var l entity.PurchaseOrderLine
	err := row.Scan(
		&l.ID, &l.OrgID, &l.PurchaseOrderID, &l.MaterialID,
		&l.QuantityOrdered, &l.QuantityReceived, &l.UnitPrice, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateBatch inserta todas las líneas de la orden.
func (r *PurchaseOrderLineRepo) CreateBatch(ctx context.Context, lines []*entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO po_lines (id, org_id, purchase_order_id, material_id, quantity_ordered, quantity_received, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range lines {
		_, err := r.q.Exec(ctx, query,
			l.ID, l.OrgID, l.PurchaseOrderID, l.MaterialID,
			l.QuantityOrdered, l.QuantityReceived, l.UnitPrice, l.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert po line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una línea de la organización. Devuelve nil si no existe.
func (r *PurchaseOrderLineRepo) GetByID(ctx context.Context, orgID, id string) (*entity.PurchaseOrderLine, error) {
	query := `SELECT ` + poLineColumns + ` FROM po_lines WHERE org_id = $1 AND id = $2`
	l, err := scanPOLine(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get po line: %w", err)
	}
	return l, nil
}

// ListByOrder lista las líneas de una orden en orden estable.
func (r *PurchaseOrderLineRepo) ListByOrder(ctx context.Context, orgID, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `SELECT ` + poLineColumns + ` FROM po_lines WHERE org_id = $1 AND purchase_order_id = $2 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orgID, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list po lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		l, err := scanPOLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan po line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateReceived fija la cantidad recibida acumulada de la línea.
func (r *PurchaseOrderLineRepo) UpdateReceived(ctx context.Context, orgID, id string, quantityReceived decimal.Decimal) error {
	query := `UPDATE po_lines SET quantity_received = $3 WHERE org_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query, orgID, id, quantityReceived)
	if err != nil {
		return fmt.Errorf("update po line received: %w", err)
	}
	return nil
}
