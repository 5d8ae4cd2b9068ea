package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/usecase"
	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/store"
)

var clock = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*usecase.ProductUseCase, *store.Store) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	s := store.NewSQLite(db)
	return usecase.NewProductUseCase(s.Products, s.TxRunner).WithClock(func() time.Time { return clock }), s
}

func TestProductUseCase_Create(t *testing.T) {
	uc, _ := setup(t)
	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:           "  Gaze Estéril ",
		Category:       "Materiais de curativo",
		Quantity:       ptr(int64(20)),
		Unit:           "pct",
		Batch:          ptr("GAZ009"),
		ExpirationDate: ptr("2024-04-10T00:00:00.000Z"),
		Supplier:       ptr(""),
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Gaze Estéril", out.Name)
	assert.EqualValues(t, 20, out.Quantity)
	require.NotNil(t, out.ExpirationDate)
	assert.Equal(t, "2024-04-10", *out.ExpirationDate)
	assert.Nil(t, out.Supplier)
	assert.Equal(t, clock, out.CreatedAt)
	assert.Equal(t, "EXPIRING", out.Status)
}

func TestProductUseCase_CreateCantidadPorDefectoYValidacion(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Termômetro", Category: "Equipamentos", Unit: "un"})
	require.NoError(t, err)
	assert.Zero(t, out.Quantity)
	assert.Equal(t, "OUT_OF_STOCK", out.Status)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", Category: "Alimentos", Unit: "un"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Luvas", Category: "EPIs", Quantity: ptr(int64(5)), Unit: "cx",
		Batch: ptr("LUV2024"), ExpirationDate: ptr("2026-06-30"),
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: ptr("Luvas Cirúrgicas M"), ExpirationDate: ptr("")})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Luvas Cirúrgicas M", out.Name)
	assert.Nil(t, out.ExpirationDate)
	require.NotNil(t, out.Batch)
	assert.Equal(t, "LUV2024", *out.Batch)
	assert.EqualValues(t, 5, out.Quantity)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Quantity: ptr(int64(100))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := uc.Update(ctx, 999, dto.UpdateProductRequest{Name: ptr("Z")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// deletingProducts borra la fila justo después de leerla.
type deletingProducts struct {
	repository.ProductRepository
}

func (r deletingProducts) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := r.ProductRepository.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if _, err := r.ProductRepository.Delete(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func TestProductUseCase_UpdateProductoBorradoEntreLecturaYEscritura(t *testing.T) {
	_, s := setup(t)
	ctx := context.Background()
	p := &entity.Product{Name: "Luvas", Category: entity.CategoryPPE, Unit: "cx", CreatedAt: clock}
	require.NoError(t, s.Products.Create(ctx, p))

	uc := usecase.NewProductUseCase(deletingProducts{s.Products}, s.TxRunner).WithClock(func() time.Time { return clock })
	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Luvas M")})
	require.NoError(t, err)
	assert.Nil(t, out)

	got, err := s.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductUseCase_ListFiltros(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Name: "Paracetamol 500mg", Category: "Medicamentos", Unit: "cx"},
		{Name: "Luvas Cirúrgicas M", Category: "EPIs", Unit: "cx"},
		{Name: "Dipirona", Category: "Medicamentos", Unit: "cx"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dipirona", all[0].Name, "más reciente primero")

	bySearch, err := uc.List(ctx, dto.ProductFilter{Search: "CIRÚRGICAS"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Luvas Cirúrgicas M", bySearch[0].Name)

	byCategory, err := uc.List(ctx, dto.ProductFilter{Category: "Medicamentos"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	unknown, err := uc.List(ctx, dto.ProductFilter{Category: "Alimentos"})
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestProductUseCase_Delete(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	free, err := uc.Create(ctx, dto.CreateProductRequest{Name: "A", Category: "EPIs", Unit: "un"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, free.ID))
	got, err := uc.GetByID(ctx, free.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(ctx, free.ID), domain.ErrNotFound)

	used, err := uc.Create(ctx, dto.CreateProductRequest{Name: "B", Category: "EPIs", Unit: "un"})
	require.NoError(t, err)
	require.NoError(t, s.Movements.Create(ctx, &entity.Movement{ProductID: used.ID, Type: "IN", Quantity: 3, Date: clock}))
	assert.ErrorIs(t, uc.Delete(ctx, used.ID), domain.ErrConflict)

	n, err := s.Movements.CountByProduct(ctx, used.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "el historial se conserva")
}

func TestProductUseCase_Categories(t *testing.T) {
	uc, _ := setup(t)
	assert.Equal(t, entity.Categories(), uc.Categories())
	assert.Len(t, uc.Categories(), 6)
}
