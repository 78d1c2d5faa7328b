package importer_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/importer"
	"github.com/lockstock/lockstock-api/internal/application/usecase"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

type fakeMaterialRepo struct {
	materials map[string]entity.Material // por ID
	skus      map[string]bool
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: map[string]entity.Material{}, skus: map[string]bool{}}
}

func (r *fakeMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	if r.skus[m.SKU] {
		return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, m.SKU)
	}
	r.skus[m.SKU] = true
	r.materials[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, orgID, id string) (*entity.Material, error) {
	m, ok := r.materials[id]
	if !ok || m.OrgID != orgID {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.materials[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) SetActive(_ context.Context, orgID, id string, active bool) error {
	m := r.materials[id]
	m.IsActive = active
	r.materials[id] = m
	return nil
}

func (r *fakeMaterialRepo) List(_ context.Context, orgID, q string, limit, offset int) ([]*entity.Material, int, error) {
	var out []*entity.Material
	for _, m := range r.materials {
		cp := m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeMaterialRepo) ListActive(_ context.Context, orgID string) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.materials {
		if m.IsActive {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func newImporter(repo *fakeMaterialRepo) *importer.MaterialsCSVImporter {
	return importer.NewMaterialsCSVImporter(usecase.NewMaterialUseCase(repo))
}

func testCtx() *authz.Context {
	return &authz.Context{OrgID: "org-1", UserID: "user-1", Role: entity.RoleManager}
}

func TestImport_ArchivoValido(t *testing.T) {
	repo := newFakeMaterialRepo()
	imp := newImporter(repo)

	csvData := []byte("sku,name,description,uom,min_stock\n" +
		"SKU-1,Tornillo M4,,unit,100\n" +
		"SKU-2,Cable 2mm,Cable eléctrico,m,50.5\n")

	result, err := imp.Import(context.Background(), testCtx(), csvData)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)
	assert.Len(t, repo.materials, 2)
}

func TestImport_FilasInvalidasNoAbortanElResto(t *testing.T) {
	repo := newFakeMaterialRepo()
	imp := newImporter(repo)

	csvData := []byte("sku,name,description,uom,min_stock\n" +
		"SKU-1,Tornillo,,unit,10\n" +
		",SinSKU,,unit,5\n" + // fila 2: sku vacío
		"SKU-3,Arandela,,unit,abc\n" + // fila 3: min_stock no numérico
		"SKU-4,Tuerca,,unit,3\n")

	result, err := imp.Import(context.Background(), testCtx(), csvData)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
}

func TestImport_SKUDuplicadoSeReporta(t *testing.T) {
	repo := newFakeMaterialRepo()
	imp := newImporter(repo)

	csvData := []byte("sku,name,description,uom,min_stock\n" +
		"SKU-1,Primero,,unit,1\n" +
		"SKU-1,Repetido,,unit,1\n")

	result, err := imp.Import(context.Background(), testCtx(), csvData)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "sku duplicado", result.Errors[0].Message)
}

func TestImport_CabeceraInvalida(t *testing.T) {
	repo := newFakeMaterialRepo()
	imp := newImporter(repo)

	_, err := imp.Import(context.Background(), testCtx(), []byte("codigo,nombre\nX,Y\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ArchivoVacio(t *testing.T) {
	repo := newFakeMaterialRepo()
	imp := newImporter(repo)

	_, err := imp.Import(context.Background(), testCtx(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Archivos exportados desde hojas de cálculo viejas llegan en Latin-1.
func TestImport_Latin1SeReinterpreta(t *testing.T) {
	repo := newFakeMaterialRepo()
	imp := newImporter(repo)

	// "Tornillería" con 'í' en Latin-1 (0xED): no es UTF-8 válido.
	row := append([]byte("sku,name,description,uom,min_stock\nSKU-1,Torniller"), 0xED)
	row = append(row, []byte("a,,unit,10\n")...)

	result, err := imp.Import(context.Background(), testCtx(), row)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	for _, m := range repo.materials {
		assert.Equal(t, "Tornillería", m.Name)
	}
}
