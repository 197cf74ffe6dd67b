package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/access"
	"github.com/jhoicas/picking-api/internal/domain/entity"
	dompicking "github.com/jhoicas/picking-api/internal/domain/picking"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

// Página máxima del listado de pedidos.
const listLimit = 150

// PickingUseCase lecturas del picking: listado de pedidos, detalle con tiempos
// y ETA, y tablero de avance por picker. El cache (TTL corto) cubre el listado
// y las líneas; los tiempos se consultan siempre frescos.
type PickingUseCase struct {
	orders repository.OrderRepository
	cache  Cache
	ttl    time.Duration
}

// NewPickingUseCase construye el caso de uso de lecturas.
func NewPickingUseCase(orders repository.OrderRepository, cache Cache, ttl time.Duration) *PickingUseCase {
	return &PickingUseCase{orders: orders, cache: cache, ttl: ttl}
}

// ListOrders devuelve los pedidos visibles para viewer, filtrados por texto.
// Un picker solo ve sus pedidos asignados; el resto de roles ve todos.
func (uc *PickingUseCase) ListOrders(ctx context.Context, viewer Viewer, filter string) (*dto.OrderListResponse, error) {
	assignedTo := ""
	if !access.CanViewAllOrders(viewer.Role) {
		assignedTo = viewer.Username
	}

	key := fmt.Sprintf("sap:orders:%s:%s", assignedTo, filter)
	var cached dto.OrderListResponse
	if err := uc.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	orders, err := uc.orders.ListOrders(ctx, filter, assignedTo, listLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{Orders: make([]dto.OrderSummaryResponse, 0, len(orders)), Total: len(orders)}
	for _, o := range orders {
		out.Orders = append(out.Orders, dto.OrderSummaryResponse{
			OrderID:      o.OrderID,
			Client:       entity.NormalizeClient(o.Client),
			AssignedUser: o.AssignedUser,
			RegionTag:    o.RegionTag,
			CompanyTag:   o.CompanyTag,
		})
	}
	_ = uc.cache.Set(ctx, key, out, uc.ttl)
	return out, nil
}

// GetOrderDetail devuelve líneas, avance, tiempos y ETA de un pedido.
// ErrNotFound si no tiene líneas; ErrForbidden si viewer no puede abrirlo.
func (uc *PickingUseCase) GetOrderDetail(ctx context.Context, viewer Viewer, orderID int64) (*dto.OrderDetailResponse, error) {
	lines, err := uc.getLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	if !access.CanOpenOrder(viewer.Role, viewer.Username, lines[0].AssignedUser) {
		return nil, domain.ErrForbidden
	}

	qtyTotal, qtyPicked := decimal.Zero, decimal.Zero
	out := &dto.OrderDetailResponse{
		OrderID:      orderID,
		Client:       entity.NormalizeClient(lines[0].Client),
		AssignedUser: lines[0].AssignedUser,
		Lines:        make([]dto.OrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		qtyTotal = qtyTotal.Add(l.Quantity)
		if l.Picked {
			qtyPicked = qtyPicked.Add(l.Quantity)
		}
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			SKU:      l.SKU,
			ItemName: l.ItemName,
			Quantity: formatQty(l.Quantity),
			Picked:   l.Picked,
		})
	}
	out.QtyTotal = formatQty(qtyTotal)
	out.QtyPicked = formatQty(qtyPicked)
	out.Pct = pct(qtyPicked, qtyTotal)

	timing, err := uc.orders.GetOrderTiming(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out.Timing = uc.buildTiming(timing, qtyTotal, qtyPicked)
	return out, nil
}

// GetUserProgress devuelve el tablero de avance del equipo (jefe/admin).
func (uc *PickingUseCase) GetUserProgress(ctx context.Context, viewer Viewer) ([]dto.UserProgressResponse, error) {
	if !access.CanViewProgress(viewer.Role) {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.orders.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserProgressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserProgressResponse{
			User:       r.User,
			OrderCount: r.OrderCount,
			LineCount:  r.LineCount,
			QtyTotal:   formatQty(r.QtyTotal),
			QtyPicked:  formatQty(r.QtyPicked),
			Pct:        r.Pct,
		})
	}
	return out, nil
}

func (uc *PickingUseCase) getLines(ctx context.Context, orderID int64) ([]entity.OrderLine, error) {
	key := fmt.Sprintf("sap:lines:%d", orderID)
	var cached []entity.OrderLine
	if err := uc.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}
	lines, err := uc.orders.GetOrderLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	_ = uc.cache.Set(ctx, key, lines, uc.ttl)
	return lines, nil
}

func (uc *PickingUseCase) buildTiming(t *entity.OrderTiming, qtyTotal, qtyPicked decimal.Decimal) dto.OrderTimingResponse {
	out := dto.OrderTimingResponse{ServerNow: t.ServerNow}
	if t.FirstPickedAt == nil || t.ElapsedMinutes == nil {
		return out // picking no iniciado: sin ETA
	}
	out.FirstPickedAt = t.FirstPickedAt
	out.ElapsedMinutes = t.ElapsedMinutes

	eta, ok := dompicking.Estimate(qtyTotal, qtyPicked, *t.ElapsedMinutes)
	if !ok {
		return out
	}
	out.ETA = dompicking.FormatMinutes(eta)
	end := dompicking.ProjectedEnd(t.ServerNow, eta)
	out.ProjectedEnd = &end
	return out
}

// formatQty presenta cantidades enteras sin decimales ("7", no "7.000").
func formatQty(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.StringFixed(0)
	}
	return q.String()
}

// pct avance redondeado 0..100; 0 cuando el total es cero.
func pct(picked, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	p := picked.Mul(decimal.NewFromInt(100)).Div(total).Round(0)
	return int(p.IntPart())
}
