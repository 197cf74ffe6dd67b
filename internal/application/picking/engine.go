package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/access"
	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

// Engine motor de estado del picking: transiciones N<->Y por línea y
// confirmación del pedido completo. Toda escritura invalida el cache de
// lecturas del pedido para conservar read-your-writes.
type Engine struct {
	store  repository.PickingRepository
	orders repository.OrderRepository
	cache  Cache
	now    func() time.Time
}

// NewEngine construye el motor de picking.
func NewEngine(store repository.PickingRepository, orders repository.OrderRepository, cache Cache) *Engine {
	return &Engine{store: store, orders: orders, cache: cache, now: time.Now}
}

// SetLinePicked fija el flag de una línea. Transición simétrica: marcar y
// desmarcar son igual de legales. Al primer marcado del pedido se sella TS en
// todas sus líneas (solo rellena nulos, nunca pisa). Línea inexistente = no-op.
func (e *Engine) SetLinePicked(ctx context.Context, viewer Viewer, orderID int64, sku string, picked bool) error {
	if err := e.checkAccess(ctx, viewer, orderID); err != nil {
		return err
	}
	rows, err := e.store.SetLinePicked(ctx, orderID, sku, picked)
	if err != nil {
		return fmt.Errorf("set picking %d/%s: %w", orderID, sku, err)
	}
	if rows > 0 && picked {
		if err := e.store.SealFirstPick(ctx, orderID, e.now()); err != nil {
			return fmt.Errorf("sellar primer picking %d: %w", orderID, err)
		}
	}
	e.invalidate(ctx, orderID)
	return nil
}

// ConfirmOrder marca todas las líneas como pickeadas, sella TS pendientes y
// fija TS_C. Es la transición terminal del flujo normal: no existe
// "desconfirmar" público. Repetir la confirmación refresca TS_C y deja todo
// en Y (punto fijo).
func (e *Engine) ConfirmOrder(ctx context.Context, viewer Viewer, orderID int64) error {
	if err := e.checkAccess(ctx, viewer, orderID); err != nil {
		return err
	}
	if _, err := e.store.ConfirmOrder(ctx, orderID, e.now()); err != nil {
		return fmt.Errorf("confirmar pedido %d: %w", orderID, err)
	}
	e.invalidate(ctx, orderID)
	return nil
}

// checkAccess replica la regla de apertura del pedido antes de escribir:
// un picker solo opera sobre pedidos asignados a su usuario.
func (e *Engine) checkAccess(ctx context.Context, viewer Viewer, orderID int64) error {
	if viewer.Role != entity.RolePicker {
		return nil
	}
	lines, err := e.orders.GetOrderLines(ctx, orderID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.ErrNotFound
	}
	if !access.CanOpenOrder(viewer.Role, viewer.Username, lines[0].AssignedUser) {
		return domain.ErrForbidden
	}
	return nil
}

func (e *Engine) invalidate(ctx context.Context, orderID int64) {
	// Las claves de listado dependen de filtro y viewer; se barren por patrón.
	_ = e.cache.DeletePattern(ctx, fmt.Sprintf("sap:lines:%d", orderID))
	_ = e.cache.DeletePattern(ctx, "sap:orders:*")
}
