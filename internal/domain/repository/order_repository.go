package repository

import (
	"context"

	"github.com/jhoicas/picking-api/internal/domain/entity"
)

// OrderRepository puerto de solo lectura sobre la tabla sap.
// Nunca muta estado; las lecturas son snapshots eventualmente consistentes.
type OrderRepository interface {
	// ListOrders devuelve pedidos DISTINCT, más recientes primero, hasta limit
	// filas. filter (opcional) busca por substring en NUMERO, CLIENTE o rs.
	// Si assignedTo no es vacío, restringe a pedidos con usr_pick = assignedTo.
	ListOrders(ctx context.Context, filter, assignedTo string, limit int) ([]entity.OrderSummary, error)

	// GetOrderLines devuelve las líneas del pedido ordenadas por CODIGO,
	// con PICKING normalizado y CANTIDAD coercionada (inválida -> 0).
	GetOrderLines(ctx context.Context, orderID int64) ([]entity.OrderLine, error)

	// GetUserProgress agrega el avance por usr_pick sobre todas las líneas
	// con usuario asignado no vacío.
	GetUserProgress(ctx context.Context) ([]entity.UserProgress, error)

	// GetOrderTiming devuelve el primer TS del pedido y los minutos
	// transcurridos hasta ahora; campos nil mientras nadie haya pickeado.
	GetOrderTiming(ctx context.Context, orderID int64) (*entity.OrderTiming, error)
}
