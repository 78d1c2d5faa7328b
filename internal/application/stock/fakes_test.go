package stock_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

// Fakes en memoria con la misma semántica que los repos de postgres:
// copias en las lecturas y suma por agregación sobre el ledger.
type fakeStore struct {
	materials map[string]entity.Material
	locations map[string]entity.Location
	movements []entity.StockMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		materials: map[string]entity.Material{},
		locations: map[string]entity.Location{},
	}
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
