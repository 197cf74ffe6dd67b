package picking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/entity"
)

var adminViewer = Viewer{Username: "admin", Role: entity.RoleAdmin}

func newEngineForTest(store *fakeStore, cache *nopCache, now func() time.Time) *Engine {
	e := NewEngine(store, store, cache)
	e.now = now
	return e
}

func TestSetLinePicked_SellaPrimerPicking(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore(func() time.Time { return t0 })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	b := store.addLine(1001, "DIA", "SKU-B", 7, "mgomez")
	e := newEngineForTest(store, &nopCache{}, func() time.Time { return t0 })

	require.NoError(t, e.SetLinePicked(context.Background(), adminViewer, 1001, "SKU-A", true))

	assert.True(t, a.Picked)
	assert.False(t, b.Picked)
	// El sellado cubre todas las líneas del pedido, también las no pickeadas.
	require.NotNil(t, a.PickedAt)
	require.NotNil(t, b.PickedAt)
	assert.Equal(t, t0, *a.PickedAt)
	assert.Equal(t, t0, *b.PickedAt)
}

func TestSetLinePicked_Idempotente(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := t0
	store := newFakeStore(func() time.Time { return now })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "")
	e := newEngineForTest(store, &nopCache{}, func() time.Time { return now })

	require.NoError(t, e.SetLinePicked(context.Background(), adminViewer, 1001, "SKU-A", true))
	first := *a.PickedAt

	// Segundo marcado más tarde: mismo estado final, TS intacto.
	now = t0.Add(20 * time.Minute)
	require.NoError(t, e.SetLinePicked(context.Background(), adminViewer, 1001, "SKU-A", true))
	assert.True(t, a.Picked)
	assert.Equal(t, first, *a.PickedAt, "el sellado nunca pisa un TS existente")
}

func TestSetLinePicked_DesmarcarNoSella(t *testing.T) {
	t0 := time.Now()
	store := newFakeStore(func() time.Time { return t0 })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "")
	e := newEngineForTest(store, &nopCache{}, func() time.Time { return t0 })

	require.NoError(t, e.SetLinePicked(context.Background(), adminViewer, 1001, "SKU-A", false))
	assert.False(t, a.Picked)
	assert.Nil(t, a.PickedAt, "la transición Y->N no sella TS")
}

func TestSetLinePicked_LineaInexistente_NoOp(t *testing.T) {
	t0 := time.Now()
	store := newFakeStore(func() time.Time { return t0 })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "")
	e := newEngineForTest(store, &nopCache{}, func() time.Time { return t0 })

	// SKU ajeno al pedido: cero filas afectadas, sin error y sin sellado.
	require.NoError(t, e.SetLinePicked(context.Background(), adminViewer, 1001, "SKU-Z", true))
	assert.Nil(t, a.PickedAt)
}

func TestSetLinePicked_PickerSoloSusPedidos(t *testing.T) {
	t0 := time.Now()
	store := newFakeStore(func() time.Time { return t0 })
	store.addLine(1001, "DIA", "SKU-A", 3, "otro")
	e := newEngineForTest(store, &nopCache{}, func() time.Time { return t0 })

	picker := Viewer{Username: "mgomez", Role: entity.RolePicker}
	err := e.SetLinePicked(context.Background(), picker, 1001, "SKU-A", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConfirmOrder_PuntoFijo(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := t0
	store := newFakeStore(func() time.Time { return now })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "")
	b := store.addLine(1001, "DIA", "SKU-B", 7, "")
	e := newEngineForTest(store, &nopCache{}, func() time.Time { return now })

	require.NoError(t, e.ConfirmOrder(context.Background(), adminViewer, 1001))
	assert.True(t, a.Picked)
	assert.True(t, b.Picked)
	require.NotNil(t, a.ConfirmedAt)
	require.NotNil(t, a.PickedAt)
	firstTS := *a.PickedAt

	// Confirmar de nuevo: todo sigue en Y, TS_C se refresca, TS no se toca.
	now = t0.Add(10 * time.Minute)
	require.NoError(t, e.ConfirmOrder(context.Background(), adminViewer, 1001))
	assert.True(t, a.Picked)
	assert.Equal(t, firstTS, *a.PickedAt)
	assert.Equal(t, now, *a.ConfirmedAt)
}

func TestEscrituras_InvalidanCache(t *testing.T) {
	t0 := time.Now()
	store := newFakeStore(func() time.Time { return t0 })
	store.addLine(1001, "DIA", "SKU-A", 3, "")
	cache := &nopCache{}
	e := newEngineForTest(store, cache, func() time.Time { return t0 })

	require.NoError(t, e.SetLinePicked(context.Background(), adminViewer, 1001, "SKU-A", true))
	assert.Contains(t, cache.deleted, "sap:lines:1001")
	assert.Contains(t, cache.deleted, "sap:orders:*")
}
