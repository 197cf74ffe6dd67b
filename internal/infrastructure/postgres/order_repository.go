package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lecturas sobre la tabla sap (PostgreSQL).
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de lectura de pedidos.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// ListOrders devuelve los pedidos DISTINCT, más recientes primero.
// La tabla sap viene de un export: CLIENTE/usr_pick/rs pueden ser NULL.
func (r *OrderRepo) ListOrders(ctx context.Context, filter, assignedTo string, limit int) ([]entity.OrderSummary, error) {
	query := `
		SELECT DISTINCT numero,
		       COALESCE(cliente, ''), COALESCE(usr_pick, ''),
		       COALESCE(rs, ''), COALESCE(empresa, '')
		FROM sap
		WHERE ($1 = '' OR numero::text ILIKE '%' || $1 || '%'
		        OR cliente ILIKE '%' || $1 || '%' OR rs ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR usr_pick = $2)
		ORDER BY numero DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, filter, assignedTo, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []entity.OrderSummary
	for rows.Next() {
		var o entity.OrderSummary
		if err := rows.Scan(&o.OrderID, &o.Client, &o.AssignedUser, &o.RegionTag, &o.CompanyTag); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// GetOrderLines devuelve las líneas del pedido ordenadas por código.
func (r *OrderRepo) GetOrderLines(ctx context.Context, orderID int64) ([]entity.OrderLine, error) {
	query := `
		SELECT numero, COALESCE(cliente, ''), COALESCE(codigo, ''),
		       COALESCE("ItemName", ''), COALESCE(cantidad, 0),
		       COALESCE(picking, ''), ts, ts_c,
		       COALESCE(usr_pick, ''), COALESCE(rs, ''), COALESCE(empresa, '')
		FROM sap
		WHERE numero = $1
		ORDER BY codigo`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		var rawFlag string
		if err := rows.Scan(&l.OrderID, &l.Client, &l.SKU, &l.ItemName, &l.Quantity,
			&rawFlag, &l.PickedAt, &l.ConfirmedAt, &l.AssignedUser, &l.RegionTag, &l.CompanyTag); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		l.Picked = entity.NormalizePickFlag(rawFlag)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetUserProgress agrega el avance por usr_pick. El porcentaje se calcula en
// Go con decimal para no arrastrar redondeos del motor.
func (r *OrderRepo) GetUserProgress(ctx context.Context) ([]entity.UserProgress, error) {
	query := `
		SELECT usr_pick,
		       COUNT(DISTINCT numero), COUNT(*),
		       COALESCE(SUM(cantidad), 0),
		       COALESCE(SUM(CASE WHEN UPPER(BTRIM(picking)) = 'Y' THEN cantidad ELSE 0 END), 0)
		FROM sap
		WHERE usr_pick IS NOT NULL AND BTRIM(usr_pick) <> ''
		GROUP BY usr_pick
		ORDER BY usr_pick`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get user progress: %w", err)
	}
	defer rows.Close()

	var list []entity.UserProgress
	for rows.Next() {
		var p entity.UserProgress
		if err := rows.Scan(&p.User, &p.OrderCount, &p.LineCount, &p.QtyTotal, &p.QtyPicked); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		if !p.QtyTotal.IsZero() {
			p.Pct = int(p.QtyPicked.Mul(decimal.NewFromInt(100)).Div(p.QtyTotal).Round(0).IntPart())
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetOrderTiming devuelve el primer TS del pedido y los minutos transcurridos,
// ambos medidos con el reloj del servidor de base de datos.
func (r *OrderRepo) GetOrderTiming(ctx context.Context, orderID int64) (*entity.OrderTiming, error) {
	query := `SELECT MIN(ts), now() FROM sap WHERE numero = $1`
	var first *time.Time
	var serverNow time.Time
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(&first, &serverNow); err != nil {
		return nil, fmt.Errorf("get order timing: %w", err)
	}
	t := &entity.OrderTiming{ServerNow: serverNow}
	if first != nil {
		t.FirstPickedAt = first
		mins := serverNow.Sub(*first).Minutes()
		t.ElapsedMinutes = &mins
	}
	return t, nil
}
