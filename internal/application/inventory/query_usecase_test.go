package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/application/usecase"
	"github.com/jhoicas/medsupply-api/internal/domain"
)

func TestQueryUseCase_HistorialMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a := createProduct(t, s, "A", 10)
	b := createProduct(t, s, "B", 10)

	tick := clock
	engine := inventory.NewRegisterMovementUseCase(s.TxRunner, nil, inventory.StockPolicy{AllowNegative: true}, zerolog.Nop()).
		WithClock(func() time.Time { tick = tick.Add(time.Minute); return tick })
	for _, in := range []inventory.MovementInputDTO{
		{ProductID: a.ID, Type: "IN", Quantity: 1},
		{ProductID: b.ID, Type: "IN", Quantity: 2},
		{ProductID: a.ID, Type: "OUT", Quantity: 3},
	} {
		_, err := engine.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	q := inventory.NewQueryUseCase(s.Products, s.Movements)

	all, err := q.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.EqualValues(t, 3, all[0].Quantity)
	assert.EqualValues(t, 1, all[2].Quantity)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date))
	}

	again, err := q.ListMovements(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, again, "las lecturas no modifican el estado")

	byA, err := q.ListMovementsByProduct(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byA, 2)
	assert.Equal(t, "OUT", byA[0].Type)

	_, err = q.ListMovementsByProduct(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryUseCase_SinMovimientos(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "A", 10)

	q := inventory.NewQueryUseCase(s.Products, s.Movements)
	list, err := q.ListMovementsByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestLecturas_SinEscriturasDevuelvenLoMismo(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a := createProduct(t, s, "Paracetamol 500mg", 50)
	b := createProduct(t, s, "Gaze Estéril", 20)
	engine := newEngine(s, nil, true)
	for _, in := range []inventory.MovementInputDTO{
		{ProductID: a.ID, Type: "OUT", Quantity: 5},
		{ProductID: b.ID, Type: "OUT", Quantity: 25},
	} {
		_, err := engine.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	products := usecase.NewProductUseCase(s.Products, s.TxRunner).WithClock(fixedClock)
	firstProducts, err := products.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	secondProducts, err := products.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, firstProducts, 2)
	assert.Equal(t, firstProducts, secondProducts)

	q := inventory.NewQueryUseCase(s.Products, s.Movements)
	firstMovements, err := q.ListMovements(ctx)
	require.NoError(t, err)
	secondMovements, err := q.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, firstMovements, 2)
	assert.Equal(t, firstMovements, secondMovements)

	assert.EqualValues(t, 45, quantityOf(t, s, a.ID))
	assert.EqualValues(t, -5, quantityOf(t, s, b.ID))
}
