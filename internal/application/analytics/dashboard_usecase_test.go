package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medsupply-api/internal/application/analytics"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/seed"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/store"
)

// 15 de marzo 2024: Bisturi vencido, Gaze por vencer (25 días), Luvas con stock bajo.
var clock = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return store.NewSQLite(db)
}

func TestGetSummary_DatosDemo(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := seed.Demo(ctx, s.Products, clock)
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(s.Products, s.Movements).WithClock(func() time.Time { return clock })
	sum, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.TotalProducts)
	assert.Equal(t, 1, sum.LowStockCount)
	assert.Equal(t, 1, sum.ExpiredCount)
	assert.Equal(t, 1, sum.ExpiringCount)
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, "Luvas Cirúrgicas M", sum.LowStock[0].Name)
	assert.Equal(t, "LOW_STOCK", sum.LowStock[0].Status)
	require.Len(t, sum.Expired, 1)
	assert.Equal(t, "Bisturi Descartável #15", sum.Expired[0].Name)
	require.Len(t, sum.ExpiringSoon, 1)
	assert.Equal(t, "Gaze Estéril", sum.ExpiringSoon[0].Name)
	assert.NotNil(t, sum.RecentMovements)
	assert.Empty(t, sum.RecentMovements)
}

func TestGetSummary_SieteMovimientosRecientes(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := &entity.Product{Name: "Paracetamol", Category: entity.CategoryMedications, Quantity: 100, Unit: "cx", CreatedAt: clock}
	require.NoError(t, s.Products.Create(ctx, p))
	for i := 0; i < 9; i++ {
		m := &entity.Movement{ProductID: p.ID, Type: entity.MovementTypeIN, Quantity: int64(i + 1), Date: clock.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, s.Movements.Create(ctx, m))
	}

	sum, err := analytics.NewDashboardUseCase(s.Products, s.Movements).WithClock(func() time.Time { return clock }).GetSummary(ctx)
	require.NoError(t, err)
	require.Len(t, sum.RecentMovements, 7)
	assert.EqualValues(t, 9, sum.RecentMovements[0].Quantity)
	assert.EqualValues(t, 3, sum.RecentMovements[6].Quantity)
	assert.Equal(t, 0, sum.LowStockCount)
}

func TestGetSummary_InventarioVacio(t *testing.T) {
	s := newStore(t)
	sum, err := analytics.NewDashboardUseCase(s.Products, s.Movements).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.TotalProducts)
	assert.Empty(t, sum.LowStock)
	assert.Empty(t, sum.Expired)
	assert.Empty(t, sum.ExpiringSoon)
}
