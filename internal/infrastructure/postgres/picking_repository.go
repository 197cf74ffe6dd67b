package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

var _ repository.PickingRepository = (*PickingRepo)(nil)

// PickingRepo escrituras sobre la tabla sap. Cada método es un UPDATE
// autocommit; no hay transacción que abarque varios pedidos.
type PickingRepo struct {
	pool *pgxpool.Pool
}

// NewPickingRepository construye el adaptador de escritura de picking.
func NewPickingRepository(pool *pgxpool.Pool) *PickingRepo {
	return &PickingRepo{pool: pool}
}

// SetLinePicked fija el flag PICKING de una línea. Cero filas afectadas
// significa línea inexistente: el caso de uso lo trata como no-op.
func (r *PickingRepo) SetLinePicked(ctx context.Context, orderID int64, sku string, picked bool) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sap SET picking = $3 WHERE numero = $1 AND codigo = $2`,
		orderID, sku, entity.PickFlag(picked),
	)
	if err != nil {
		return 0, fmt.Errorf("set line picked: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SealFirstPick sella TS en las líneas del pedido que aún lo tienen nulo.
// El WHERE garantiza la idempotencia: un TS existente nunca se pisa.
func (r *PickingRepo) SealFirstPick(ctx context.Context, orderID int64, now time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sap SET ts = $2 WHERE numero = $1 AND ts IS NULL`,
		orderID, now,
	)
	if err != nil {
		return fmt.Errorf("seal first pick: %w", err)
	}
	return nil
}

// ConfirmOrder cierra el pedido: todo a 'Y', TS pendientes sellados y TS_C
// fijado. Repetir la confirmación refresca TS_C sin tocar TS.
func (r *PickingRepo) ConfirmOrder(ctx context.Context, orderID int64, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sap SET picking = 'Y', ts = COALESCE(ts, $2), ts_c = $2 WHERE numero = $1`,
		orderID, now,
	)
	if err != nil {
		return 0, fmt.Errorf("confirm order: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListOrderIDs devuelve los NUMERO distintos que matchean el modo de reparto.
func (r *PickingRepo) ListOrderIDs(ctx context.Context, mode repository.AssignMode) ([]int64, error) {
	query := `SELECT DISTINCT numero FROM sap`
	if mode == repository.AssignUnassignedOnly {
		query += ` WHERE usr_pick IS NULL OR BTRIM(usr_pick) = ''`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list order ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignOrder fija usr_pick en las líneas del pedido dentro de una transacción
// con lock_timeout corto (SET LOCAL, no contamina la conexión del pool). Con
// onlyUnassigned la guarda se re-chequea en el propio UPDATE: si otro reparto
// ganó la carrera, cero filas afectadas y sin error. Lock-wait vencido o
// deadlock salen como domain.ErrLockContention para que el caso de uso
// reintente.
func (r *PickingRepo) AssignOrder(ctx context.Context, orderID int64, user string, onlyUnassigned bool, lockTimeout time.Duration) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("assign order: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", lockTimeout.Milliseconds())); err != nil {
		return 0, fmt.Errorf("assign order: lock_timeout: %w", err)
	}

	query := `UPDATE sap SET usr_pick = $2 WHERE numero = $1`
	if onlyUnassigned {
		query += ` AND (usr_pick IS NULL OR BTRIM(usr_pick) = '')`
	}
	tag, err := tx.Exec(ctx, query, orderID, user)
	if err != nil {
		if isLockContention(err) {
			return 0, fmt.Errorf("pedido %d: %w", orderID, domain.ErrLockContention)
		}
		return 0, fmt.Errorf("assign order %d: %w", orderID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		if isLockContention(err) {
			return 0, fmt.Errorf("pedido %d: %w", orderID, domain.ErrLockContention)
		}
		return 0, fmt.Errorf("assign order %d: commit: %w", orderID, err)
	}
	return tag.RowsAffected(), nil
}
