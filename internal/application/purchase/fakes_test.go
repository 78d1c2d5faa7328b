package purchase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/domain/repository"
)

// fakeStore estado en memoria compartido por los repositorios de test.
// Los repos devuelven copias para imitar el comportamiento de un scan de BD.
type fakeStore struct {
	orders    map[string]entity.PurchaseOrder
	lines     map[string]entity.PurchaseOrderLine
	movements []entity.StockMovement
	locations map[string]entity.Location
	suppliers map[string]entity.Supplier
	materials map[string]entity.Material
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    map[string]entity.PurchaseOrder{},
		lines:     map[string]entity.PurchaseOrderLine{},
		locations: map[string]entity.Location{},
		suppliers: map[string]entity.Supplier{},
		materials: map[string]entity.Material{},
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	return c
}

func (s *fakeStore) replaceWith(other *fakeStore) {
	s.orders = other.orders
	s.lines = other.lines
	s.movements = other.movements
	s.locations = other.locations
	s.suppliers = other.suppliers
	s.materials = other.materials
}

// ── repos ─────────────────────────────────────────────────────────────────────

type fakePORepo struct{ s *fakeStore }

func (r *fakePORepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.orders[po.ID] = *po
	return nil
}

func (r *fakePORepo) GetByID(_ context.Context, orgID, id string) (*entity.PurchaseOrder, error) {
	po, ok := r.s.orders[id]
	if !ok || po.OrgID != orgID {
		return nil, nil
	}
	cp := po
	return &cp, nil
}

func (r *fakePORepo) GetForUpdate(ctx context.Context, orgID, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, orgID, id)
}

func (r *fakePORepo) UpdateStatus(_ context.Context, orgID, id, status string) error {
	po := r.s.orders[id]
	po.Status = status
	r.s.orders[id] = po
	return nil
}

func (r *fakePORepo) List(_ context.Context, orgID string, filter repository.POFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.OrgID != orgID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && po.Status != filter.Status {
			continue
		}
		if filter.SupplierID != "" && po.SupplierID != filter.SupplierID {
			continue
		}
		if filter.Q != "" && !strings.Contains(po.PONumber, filter.Q) {
			continue
		}
		cp := po
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PONumber < out[j].PONumber })
	return out, len(out), nil
}

type fakeLineRepo struct{ s *fakeStore }

func (r *fakeLineRepo) CreateBatch(_ context.Context, lines []*entity.PurchaseOrderLine) error {
	for _, l := range lines {
		r.s.lines[l.ID] = *l
	}
	return nil
}

func (r *fakeLineRepo) GetByID(_ context.Context, orgID, id string) (*entity.PurchaseOrderLine, error) {
	l, ok := r.s.lines[id]
	if !ok || l.OrgID != orgID {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (r *fakeLineRepo) ListByOrder(_ context.Context, orgID, poID string) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	for _, l := range r.s.lines {
		if l.OrgID == orgID && l.PurchaseOrderID == poID {
			cp := l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLineRepo) UpdateReceived(_ context.Context, orgID, id string, quantityReceived decimal.Decimal) error {
	l := r.s.lines[id]
	l.QuantityReceived = quantityReceived
	r.s.lines[id] = l
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *fakeMovementRepo) SumForMaterial(_ context.Context, orgID, materialID, locationID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.OrgID != orgID || m.MaterialID != materialID {
			continue
		}
		if locationID != "" && m.LocationID != locationID {
			continue
		}
		sum = sum.Add(m.QuantityDelta)
	}
	return sum, nil
}

func (r *fakeMovementRepo) TotalsByMaterial(_ context.Context, orgID string) (map[string]decimal.Decimal, error) {
	totals := map[string]decimal.Decimal{}
	for _, m := range r.s.movements {
		if m.OrgID == orgID {
			totals[m.MaterialID] = totals[m.MaterialID].Add(m.QuantityDelta)
		}
	}
	return totals, nil
}

func (r *fakeMovementRepo) ListByMaterial(_ context.Context, orgID, materialID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.OrgID == orgID && m.MaterialID == materialID {
			out = append(out, &m)
		}
	}
	return out, len(out), nil
}

type fakeLocationRepo struct{ s *fakeStore }

func (r *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.locations[l.ID] = *l
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, orgID, id string) (*entity.Location, error) {
	l, ok := r.s.locations[id]
	if !ok || l.OrgID != orgID {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (r *fakeLocationRepo) List(_ context.Context, orgID string, limit, offset int) ([]*entity.Location, int, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		if l.OrgID == orgID {
			cp := l
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

type fakeSupplierRepo struct{ s *fakeStore }

func (r *fakeSupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, orgID, id string) (*entity.Supplier, error) {
	sp, ok := r.s.suppliers[id]
	if !ok || sp.OrgID != orgID {
		return nil, nil
	}
	cp := sp
	return &cp, nil
}

func (r *fakeSupplierRepo) List(_ context.Context, orgID string, limit, offset int) ([]*entity.Supplier, int, error) {
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if sp.OrgID == orgID {
			cp := sp
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

type fakeMaterialRepo struct{ s *fakeStore }

func (r *fakeMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.s.materials[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, orgID, id string) (*entity.Material, error) {
	m, ok := r.s.materials[id]
	if !ok || m.OrgID != orgID {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.s.materials[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) SetActive(_ context.Context, orgID, id string, active bool) error {
	m := r.s.materials[id]
	m.IsActive = active
	r.s.materials[id] = m
	return nil
}

func (r *fakeMaterialRepo) List(_ context.Context, orgID, q string, limit, offset int) ([]*entity.Material, int, error) {
	var out []*entity.Material
	for _, m := range r.s.materials {
		if m.OrgID == orgID {
			cp := m
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeMaterialRepo) ListActive(_ context.Context, orgID string) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.s.materials {
		if m.OrgID == orgID && m.IsActive {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// fakeTxRunner imita Commit/Rollback: ejecuta fn sobre una copia del estado y
// solo la publica si fn termina sin error. Un fallo a mitad de lote deja el
// estado original intacto, igual que el rollback de la transacción real.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	lineRepo repository.PurchaseOrderLineRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	working := t.s.clone()
	err := fn(&fakePORepo{s: working}, &fakeLineRepo{s: working}, &fakeMovementRepo{s: working})
	if err != nil {
		return err
	}
	t.s.replaceWith(working)
	return nil
}
