package repository

import (
	"context"
	"time"
)

// AssignMode selección de pedidos para el reparto masivo.
type AssignMode string

const (
	AssignAll            AssignMode = "ALL"             // todos los pedidos
	AssignUnassignedOnly AssignMode = "UNASSIGNED_ONLY" // solo usr_pick nulo/vacío
)

// ValidAssignMode indica si m es un modo conocido.
func ValidAssignMode(m AssignMode) bool {
	return m == AssignAll || m == AssignUnassignedOnly
}

// PickingRepository puerto de escritura sobre la tabla sap. Cada operación es
// un UPDATE autocommit; no hay transacción multi-sentencia (ver bulkAssign).
type PickingRepository interface {
	// SetLinePicked fija PICKING de una línea. Devuelve filas afectadas
	// (0 = pedido/línea inexistente, no-op).
	SetLinePicked(ctx context.Context, orderID int64, sku string, picked bool) (int64, error)

	// SealFirstPick rellena TS = now en las líneas del pedido que aún lo
	// tienen nulo. Idempotente: nunca pisa un TS existente.
	SealFirstPick(ctx context.Context, orderID int64, now time.Time) error

	// ConfirmOrder marca todas las líneas PICKING='Y', sella TS pendientes y
	// fija TS_C = now. Devuelve filas afectadas.
	ConfirmOrder(ctx context.Context, orderID int64, now time.Time) (int64, error)

	// ListOrderIDs devuelve los NUMERO distintos que matchean el modo.
	ListOrderIDs(ctx context.Context, mode AssignMode) ([]int64, error)

	// AssignOrder fija usr_pick = user en las líneas del pedido, con guarda
	// "usr_pick IS NULL OR usr_pick = ''" cuando onlyUnassigned, y lock_timeout
	// corto en la sesión. Devuelve filas afectadas (0 = perdió la carrera).
	// Errores de lock-wait/deadlock se devuelven como domain.ErrLockContention.
	AssignOrder(ctx context.Context, orderID int64, user string, onlyUnassigned bool, lockTimeout time.Duration) (int64, error)
}
