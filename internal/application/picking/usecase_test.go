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

func newUseCaseForTest(store *fakeStore, cache Cache) *PickingUseCase {
	return NewPickingUseCase(store, cache, 30*time.Second)
}

func TestListOrders_PickerSoloVeLosSuyos(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	store.addLine(1002, "ARA", "SKU-B", 5, "otro")
	store.addLine(1003, "DIA", "SKU-C", 2, "")
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.ListOrders(context.Background(), Viewer{Username: "mgomez", Role: entity.RolePicker}, "")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, int64(1001), out.Orders[0].OrderID)
}

func TestListOrders_OperadorVeTodo(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	store.addLine(1002, "ARA", "SKU-B", 5, "otro")
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.ListOrders(context.Background(), Viewer{Username: "op1", Role: entity.RoleOperador}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
}

func TestListOrders_FiltroPorCliente(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "")
	store.addLine(1002, "ARA", "SKU-B", 5, "")
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.ListOrders(context.Background(), adminViewer, "ARA")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, int64(1002), out.Orders[0].OrderID)
}

func TestListOrders_NormalizaCliente(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "12345.0", "SKU-A", 3, "")
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.ListOrders(context.Background(), adminViewer, "")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "12345", out.Orders[0].Client, "cliente exportado como float entero se limpia")
}

func TestGetOrderDetail_Avance(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore(func() time.Time { return t0 })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	store.addLine(1001, "DIA", "SKU-B", 7, "mgomez")
	a.Picked = true
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.GetOrderDetail(context.Background(), adminViewer, 1001)
	require.NoError(t, err)
	assert.Equal(t, "10", out.QtyTotal)
	assert.Equal(t, "3", out.QtyPicked)
	assert.Equal(t, 30, out.Pct)
	// Las líneas salen ordenadas por código.
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "SKU-A", out.Lines[0].SKU)
	assert.True(t, out.Lines[0].Picked)
	assert.Equal(t, "SKU-B", out.Lines[1].SKU)
}

func TestGetOrderDetail_Inexistente(t *testing.T) {
	store := newFakeStore(time.Now)
	uc := newUseCaseForTest(store, &nopCache{})

	_, err := uc.GetOrderDetail(context.Background(), adminViewer, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrderDetail_PickerAjeno(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "otro")
	uc := newUseCaseForTest(store, &nopCache{})

	_, err := uc.GetOrderDetail(context.Background(), Viewer{Username: "mgomez", Role: entity.RolePicker}, 1001)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetOrderDetail_ETA(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := t0.Add(30 * time.Minute)
	store := newFakeStore(func() time.Time { return now })
	a := store.addLine(1001, "DIA", "SKU-A", 3, "")
	store.addLine(1001, "DIA", "SKU-B", 7, "")
	a.Picked = true
	a.PickedAt = &t0
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.GetOrderDetail(context.Background(), adminViewer, 1001)
	require.NoError(t, err)
	require.NotNil(t, out.Timing.FirstPickedAt)
	require.NotNil(t, out.Timing.ElapsedMinutes)
	assert.InDelta(t, 30, *out.Timing.ElapsedMinutes, 0.01)
	// 3 uds en 30 min -> 0.1 uds/min -> 7 restantes en 70 min.
	assert.Equal(t, "1 h 10 min", out.Timing.ETA)
	require.NotNil(t, out.Timing.ProjectedEnd)
	assert.Equal(t, now.Add(70*time.Minute), *out.Timing.ProjectedEnd)
}

func TestGetOrderDetail_SinPickingSinETA(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "")
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.GetOrderDetail(context.Background(), adminViewer, 1001)
	require.NoError(t, err)
	assert.Nil(t, out.Timing.FirstPickedAt)
	assert.Empty(t, out.Timing.ETA)
	assert.Nil(t, out.Timing.ProjectedEnd)
}

func TestPedidoCompleto_PickeoYConfirmacion(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore(func() time.Time { return t0 })
	store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	store.addLine(1001, "DIA", "SKU-B", 7, "mgomez")
	cache := &nopCache{}
	uc := newUseCaseForTest(store, cache)
	e := newEngineForTest(store, cache, func() time.Time { return t0 })

	picker := Viewer{Username: "mgomez", Role: entity.RolePicker}
	require.NoError(t, e.SetLinePicked(context.Background(), picker, 1001, "SKU-A", true))

	out, err := uc.GetOrderDetail(context.Background(), picker, 1001)
	require.NoError(t, err)
	assert.Equal(t, "3", out.QtyPicked)
	assert.Equal(t, 30, out.Pct)

	require.NoError(t, e.ConfirmOrder(context.Background(), picker, 1001))

	out, err = uc.GetOrderDetail(context.Background(), picker, 1001)
	require.NoError(t, err)
	assert.Equal(t, "10", out.QtyPicked)
	assert.Equal(t, 100, out.Pct)
	for _, l := range out.Lines {
		assert.True(t, l.Picked)
	}
}

func TestListOrders_PickerSinAsignaciones_ListaVacia(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "otro")
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.ListOrders(context.Background(), Viewer{Username: "mgomez", Role: entity.RolePicker}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)
	assert.Empty(t, out.Orders)
}

func TestGetUserProgress_SoloJefeYAdmin(t *testing.T) {
	store := newFakeStore(time.Now)
	store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	uc := newUseCaseForTest(store, &nopCache{})

	_, err := uc.GetUserProgress(context.Background(), Viewer{Username: "mgomez", Role: entity.RolePicker})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetUserProgress(context.Background(), Viewer{Username: "op1", Role: entity.RoleOperador})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.GetUserProgress(context.Background(), Viewer{Username: "boss", Role: entity.RoleJefe})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "mgomez", out[0].User)
}

func TestGetUserProgress_Acumulados(t *testing.T) {
	store := newFakeStore(time.Now)
	a := store.addLine(1001, "DIA", "SKU-A", 3, "mgomez")
	store.addLine(1001, "DIA", "SKU-B", 7, "mgomez")
	store.addLine(1002, "ARA", "SKU-C", 10, "mgomez")
	a.Picked = true
	uc := newUseCaseForTest(store, &nopCache{})

	out, err := uc.GetUserProgress(context.Background(), adminViewer)
	require.NoError(t, err)
	require.Len(t, out, 1)
	p := out[0]
	assert.Equal(t, 2, p.OrderCount)
	assert.Equal(t, 3, p.LineCount)
	assert.Equal(t, "20", p.QtyTotal)
	assert.Equal(t, "3", p.QtyPicked)
	assert.Equal(t, 15, p.Pct)
}
