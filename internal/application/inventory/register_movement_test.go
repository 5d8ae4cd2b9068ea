package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/store"
)

var clock = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return clock }

func newStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return store.NewSQLite(db)
}

func createProduct(t *testing.T, s *store.Store, name string, qty int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Category: entity.CategoryDressing, Quantity: qty, Unit: "pct", CreatedAt: clock}
	require.NoError(t, s.Products.Create(context.Background(), p))
	return p
}

func quantityOf(t *testing.T, s *store.Store, id int64) int64 {
	t.Helper()
	p, err := s.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func movementCount(t *testing.T, s *store.Store) int {
	t.Helper()
	list, err := s.Movements.List(context.Background())
	require.NoError(t, err)
	return len(list)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []inventory.MovementRecordedEvent
	err    error
}

func (p *recordingPublisher) PublishMovement(_ context.Context, e inventory.MovementRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func newEngine(s *store.Store, pub inventory.MovementPublisher, allowNegative bool) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(s.TxRunner, pub, inventory.StockPolicy{AllowNegative: allowNegative}, zerolog.Nop()).
		WithClock(fixedClock)
}

func TestRecordMovement_EntradaSuma(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Paracetamol 500mg", 50)
	pub := &recordingPublisher{}

	mov, err := newEngine(s, pub, true).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "IN", Quantity: 10})
	require.NoError(t, err)
	assert.NotZero(t, mov.ID)
	assert.Equal(t, clock, mov.Date)
	assert.EqualValues(t, 60, quantityOf(t, s, p.ID))

	require.Len(t, pub.events, 1)
	assert.EqualValues(t, 50, pub.events[0].PreviousQuantity)
	assert.EqualValues(t, 60, pub.events[0].NewQuantity)
	assert.Equal(t, mov.ID, pub.events[0].Movement.ID)
}

func TestRecordMovement_SalidaPuedeDejarNegativo(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	gaze := createProduct(t, s, "Gaze Estéril", 20)

	_, err := newEngine(s, nil, true).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: gaze.ID, Type: "OUT", Quantity: 25})
	require.NoError(t, err)
	assert.EqualValues(t, -5, quantityOf(t, s, gaze.ID))

	history, err := s.Movements.ListByProduct(ctx, gaze.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.MovementTypeOUT, history[0].Type)
	assert.EqualValues(t, 25, history[0].Quantity)
}

func TestRecordMovement_ConGuardaRechazaStockInsuficiente(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	gaze := createProduct(t, s, "Gaze Estéril", 20)
	pub := &recordingPublisher{}

	_, err := newEngine(s, pub, false).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: gaze.ID, Type: "OUT", Quantity: 25})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 20, quantityOf(t, s, gaze.ID))
	assert.Zero(t, movementCount(t, s))
	assert.Empty(t, pub.events)

	_, err = newEngine(s, pub, false).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: gaze.ID, Type: "OUT", Quantity: 20})
	require.NoError(t, err)
	assert.Zero(t, quantityOf(t, s, gaze.ID))
}

func TestRecordMovement_DesbordeDeCantidadSeRechaza(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	paracetamol := createProduct(t, s, "Paracetamol 500mg", 50)
	negativo := createProduct(t, s, "Gaze Estéril", -10)
	pub := &recordingPublisher{}

	for _, allowNegative := range []bool{true, false} {
		_, err := newEngine(s, pub, allowNegative).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: paracetamol.ID, Type: "IN", Quantity: math.MaxInt64})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "quantity", vErr.Field)
		assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.EqualValues(t, 50, quantityOf(t, s, paracetamol.ID))

	_, err := newEngine(s, pub, true).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: negativo.ID, Type: "OUT", Quantity: math.MaxInt64})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualValues(t, -10, quantityOf(t, s, negativo.ID))

	assert.Zero(t, movementCount(t, s))
	assert.Empty(t, pub.events)

	// En el límite exacto todavía es representable
	_, err = newEngine(s, pub, true).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: paracetamol.ID, Type: "IN", Quantity: math.MaxInt64 - 50})
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MaxInt64), quantityOf(t, s, paracetamol.ID))
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	createProduct(t, s, "Luvas", 5)

	_, err := newEngine(s, nil, true).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: 999, Type: "IN", Quantity: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, movementCount(t, s))
}

func TestRecordMovement_EntradaInvalida(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Luvas", 5)
	engine := newEngine(s, nil, true)

	for _, in := range []inventory.MovementInputDTO{
		{ProductID: p.ID, Type: "IN", Quantity: 0},
		{ProductID: p.ID, Type: "OUT", Quantity: -3},
		{ProductID: p.ID, Type: "ADJUST", Quantity: 1},
		{ProductID: 0, Type: "IN", Quantity: 1},
	} {
		_, err := engine.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.EqualValues(t, 5, quantityOf(t, s, p.ID))
	assert.Zero(t, movementCount(t, s))
}

// failingProducts simula una falla del almacenamiento al escribir la cantidad.
type failingProducts struct {
	repository.ProductRepository
}

var errDisk = errors.New("disk I/O error")

func (failingProducts) UpdateQuantity(context.Context, int64, int64) error { return errDisk }

type failingTxRunner struct {
	inner inventory.TxRunner
}

func (r failingTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return r.inner.Run(ctx, func(pr repository.ProductRepository, mr repository.MovementRepository) error {
		return fn(failingProducts{pr}, mr)
	})
}

func TestRecordMovement_FallaDeAlmacenamientoRevierte(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Paracetamol 500mg", 50)
	pub := &recordingPublisher{}

	engine := inventory.NewRegisterMovementUseCase(failingTxRunner{s.TxRunner}, pub, inventory.StockPolicy{AllowNegative: true}, zerolog.Nop())
	_, err := engine.RecordMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "OUT", Quantity: 10})
	require.ErrorIs(t, err, errDisk)

	assert.EqualValues(t, 50, quantityOf(t, s, p.ID))
	assert.Zero(t, movementCount(t, s), "el movimiento insertado se revierte")
	assert.Empty(t, pub.events)
}

func TestRecordMovement_FallaDelPublicadorNoAfectaResultado(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Paracetamol 500mg", 50)
	pub := &recordingPublisher{err: errors.New("broker caído")}

	_, err := newEngine(s, pub, true).RecordMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "OUT", Quantity: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 40, quantityOf(t, s, p.ID))
	assert.Len(t, pub.events, 1)
}

func TestRecordMovement_SalidasConcurrentesSeSerializan(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Luvas Cirúrgicas M", 50)
	engine := newEngine(s, nil, true)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.RecordMovement(ctx, inventory.MovementInputDTO{ProductID: p.ID, Type: "OUT", Quantity: 10})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.EqualValues(t, 30, quantityOf(t, s, p.ID))
	assert.Equal(t, 2, movementCount(t, s))
}

func TestRecordMovement_CantidadIgualAHistorial(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Seringa", 0)
	engine := newEngine(s, nil, true)

	steps := []inventory.MovementInputDTO{
		{ProductID: p.ID, Type: "IN", Quantity: 30},
		{ProductID: p.ID, Type: "OUT", Quantity: 12},
		{ProductID: p.ID, Type: "IN", Quantity: 4},
		{ProductID: p.ID, Type: "OUT", Quantity: 40},
	}
	for _, in := range steps {
		_, err := engine.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	history, err := s.Movements.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	var sum int64
	for _, m := range history {
		sum += m.Delta()
	}
	assert.EqualValues(t, -18, sum)
	assert.Equal(t, sum, quantityOf(t, s, p.ID))
}

func TestRecordMovementFromRequest_Validacion(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := createProduct(t, s, "Gaze Estéril", 20)
	engine := newEngine(s, nil, true)

	typ := "OUT"
	_, err := engine.RecordMovementFromRequest(ctx, dto.CreateMovementRequest{ProductID: &p.ID, Type: &typ})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Field)

	qty := int64(5)
	out, err := engine.RecordMovementFromRequest(ctx, dto.CreateMovementRequest{ProductID: &p.ID, Type: &typ, Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, p.ID, out.ProductID)
	assert.Equal(t, "OUT", out.Type)
	assert.EqualValues(t, 15, quantityOf(t, s, p.ID))
}
