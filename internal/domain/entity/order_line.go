package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine una fila de la tabla sap: un ítem (CODIGO) dentro de un pedido (NUMERO).
// Todas las líneas de un NUMERO comparten CLIENTE y usr_pick por convención;
// el esquema no lo impone.
type OrderLine struct {
	OrderID      int64           // NUMERO
	Client       string          // CLIENTE
	SKU          string          // CODIGO
	ItemName     string          // ItemName
	Quantity     decimal.Decimal // CANTIDAD
	Picked       bool            // PICKING normalizado a Y/N
	PickedAt     *time.Time      // TS: se sella una sola vez, al primer picking del pedido
	ConfirmedAt  *time.Time      // TS_C: se fija al confirmar el pedido completo
	AssignedUser string          // usr_pick
	RegionTag    string          // rs
	CompanyTag   string          // empresa
}

// OrderSummary un pedido en el listado (fila DISTINCT de sap).
type OrderSummary struct {
	OrderID      int64
	Client       string
	AssignedUser string
	RegionTag    string
	CompanyTag   string
}

// UserProgress avance agregado de un picker sobre sus pedidos asignados.
type UserProgress struct {
	User       string
	OrderCount int
	LineCount  int
	QtyTotal   decimal.Decimal
	QtyPicked  decimal.Decimal
	Pct        int // round(100 * QtyPicked/QtyTotal), 0 si QtyTotal es 0
}

// OrderTiming tiempos de un pedido: primer picking y minutos transcurridos.
// FirstPickedAt y ElapsedMinutes son nil mientras nadie haya pickeado.
type OrderTiming struct {
	FirstPickedAt  *time.Time
	ElapsedMinutes *float64
	ServerNow      time.Time
}

// NormalizePickFlag interpreta el valor crudo de PICKING: 'Y' (cualquier
// combinación de mayúsculas/espacios) es true; vacío, 'N' o basura es false.
func NormalizePickFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "Y")
}

// PickFlag devuelve la representación almacenada del flag.
func PickFlag(picked bool) string {
	if picked {
		return "Y"
	}
	return "N"
}

// NormalizeClient limpia el CLIENTE para mostrar: los floats integrales que
// llegan del export SAP ("100023120.0") se muestran sin punto decimal.
func NormalizeClient(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		if frac != "" && strings.Trim(frac, "0") == "" && isDigits(s[:i]) {
			return s[:i]
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
