package picking

import (
	"context"

	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/access"
	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

// SheetUseCase genera la hoja de picking imprimible de un pedido
// (la que el picker lleva al pasillo).
type SheetUseCase struct {
	orders repository.OrderRepository
	gen    SheetGenerator
}

// NewSheetUseCase construye el caso de uso de la hoja de picking.
func NewSheetUseCase(orders repository.OrderRepository, gen SheetGenerator) *SheetUseCase {
	return &SheetUseCase{orders: orders, gen: gen}
}

// OrderSheet devuelve el PDF de la hoja de picking. Mismas reglas de acceso
// que el detalle del pedido.
func (uc *SheetUseCase) OrderSheet(ctx context.Context, viewer Viewer, orderID int64) ([]byte, error) {
	lines, err := uc.orders.GetOrderLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	if !access.CanOpenOrder(viewer.Role, viewer.Username, lines[0].AssignedUser) {
		return nil, domain.ErrForbidden
	}
	client := entity.NormalizeClient(lines[0].Client)
	return uc.gen.GeneratePickingSheet(ctx, orderID, client, lines[0].AssignedUser, lines)
}
