// Package picking contiene la lógica pura del picking: la proyección lineal
// de tiempo restante (ETA) a partir del avance observado.
package picking

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estimate proyecta los minutos restantes para terminar un pedido.
//
//	rate = pickedQty / max(elapsedMinutes, 1)
//	eta  = max(totalQty - pickedQty, 0) / rate
//
// El piso de 1 minuto evita que un primer picking casi instantáneo dispare la
// proyección. Devuelve ok=false mientras no haya avance (pickedQty <= 0):
// sin ritmo observado no hay estimación. Es una extrapolación lineal, ruidosa
// con elapsedMinutes pequeño; no lleva intervalo de confianza.
func Estimate(totalQty, pickedQty decimal.Decimal, elapsedMinutes float64) (etaMinutes float64, ok bool) {
	picked, _ := pickedQty.Float64()
	if picked <= 0 {
		return 0, false
	}
	remaining, _ := totalQty.Sub(pickedQty).Float64()
	if remaining <= 0 {
		return 0, true
	}
	rate := picked / math.Max(elapsedMinutes, 1)
	return remaining / rate, true
}

// ProjectedEnd devuelve la hora de término proyectada: now + etaMinutes.
func ProjectedEnd(now time.Time, etaMinutes float64) time.Time {
	return now.Add(time.Duration(etaMinutes * float64(time.Minute)))
}

// FormatMinutes presenta una duración en minutos como texto legible:
// "0 min" para entradas no positivas, "45 min", "2 h 5 min".
func FormatMinutes(minutes float64) string {
	m := int(math.Round(minutes))
	if m <= 0 {
		return "0 min"
	}
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%d h %d min", m/60, m%60)
}
