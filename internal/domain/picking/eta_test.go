package picking_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/picking-api/internal/domain/picking"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestEstimate_SinAvance_NoDisponible(t *testing.T) {
	_, ok := picking.Estimate(dec(10), dec(0), 30)
	assert.False(t, ok, "sin unidades pickeadas no hay estimación")
}

func TestEstimate_ProyeccionLineal(t *testing.T) {
	// 3 de 10 unidades en 30 min -> ritmo 0.1/min -> quedan 7 -> 70 min.
	eta, ok := picking.Estimate(dec(10), dec(3), 30)
	require.True(t, ok)
	assert.InDelta(t, 70, eta, 0.001)
}

func TestEstimate_PisoDeUnMinuto(t *testing.T) {
	// Primer picking casi instantáneo: elapsed 0.2 min se trata como 1 min.
	eta, ok := picking.Estimate(dec(10), dec(2), 0.2)
	require.True(t, ok)
	assert.InDelta(t, 4, eta, 0.001) // ritmo 2/min sobre 8 restantes
}

func TestEstimate_PedidoCompleto_Cero(t *testing.T) {
	eta, ok := picking.Estimate(dec(10), dec(10), 45)
	require.True(t, ok)
	assert.Zero(t, eta)

	// Sobre-picking (picked > total) tampoco proyecta tiempo negativo.
	eta, ok = picking.Estimate(dec(10), dec(12), 45)
	require.True(t, ok)
	assert.Zero(t, eta)
}

func TestEstimate_MonotonaEnAvance(t *testing.T) {
	// A total y elapsed fijos, más unidades pickeadas nunca sube el ETA.
	prev := 1e18
	for picked := int64(1); picked <= 10; picked++ {
		eta, ok := picking.Estimate(dec(10), dec(picked), 30)
		require.True(t, ok)
		assert.LessOrEqual(t, eta, prev, "picked=%d", picked)
		prev = eta
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{-5, "0 min"},
		{0, "0 min"},
		{0.2, "0 min"},
		{45, "45 min"},
		{60, "1 h 0 min"},
		{125, "2 h 5 min"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, picking.FormatMinutes(c.in), "minutos=%v", c.in)
	}
}

func TestProjectedEnd(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(90*time.Minute), picking.ProjectedEnd(now, 90))
}
