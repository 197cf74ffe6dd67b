package picking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

// AssignOptions parámetros del reparto masivo.
type AssignOptions struct {
	MaxRetries  int           // reintentos por pedido ante contención de locks
	BackoffBase time.Duration // base del backoff exponencial con jitter
	LockTimeout time.Duration // lock_timeout de cada UPDATE
}

// Assigner reparte pedidos entre pickers al azar. Cada pedido es un UPDATE
// autocommit independiente: la operación es at-least-once y best-effort, lo ya
// asignado no se revierte si un pedido posterior falla.
type Assigner struct {
	store repository.PickingRepository
	cache Cache
	opts  AssignOptions
	rnd   *rand.Rand
	sleep func(time.Duration)
}

// NewAssigner construye el repartidor.
func NewAssigner(store repository.PickingRepository, cache Cache, opts AssignOptions) *Assigner {
	return &Assigner{
		store: store,
		cache: cache,
		opts:  opts,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
	}
}

// BulkAssign asigna cada pedido que matchea mode a un picker elegido uniforme
// al azar. Los pedidos se recorren en orden aleatorio para no sesgar qué
// pedidos quedan sin asignar ante una falla parcial. La contención de locks se
// reintenta por pedido con backoff; cualquier otro error aborta la operación.
func (a *Assigner) BulkAssign(ctx context.Context, pickers []string, mode repository.AssignMode) (*dto.BulkAssignResponse, error) {
	candidates := make([]string, 0, len(pickers))
	for _, p := range pickers {
		if s := strings.TrimSpace(p); s != "" {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("lista de pickers vacía: %w", domain.ErrInvalidInput)
	}
	if !repository.ValidAssignMode(mode) {
		return nil, fmt.Errorf("modo %q: %w", mode, domain.ErrInvalidInput)
	}

	ids, err := a.store.ListOrderIDs(ctx, mode)
	if err != nil {
		return nil, err
	}
	a.rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	onlyUnassigned := mode == repository.AssignUnassignedOnly
	out := &dto.BulkAssignResponse{}
	for _, id := range ids {
		user := candidates[a.rnd.Intn(len(candidates))]
		rows, err := a.assignWithRetry(ctx, id, user, onlyUnassigned)
		if err != nil {
			a.invalidate(ctx)
			// Lo ya comprometido queda; el error indica dónde se cortó.
			return nil, fmt.Errorf("reparto abortado en pedido %d (%d pedidos ya asignados): %w", id, out.OrdersAffected, err)
		}
		if rows > 0 {
			out.OrdersAffected++
			out.LinesAffected += rows
		}
	}
	a.invalidate(ctx)
	return out, nil
}

// assignWithRetry ejecuta el UPDATE de un pedido reintentando solo la
// contención transitoria (lock-wait timeout, deadlock). Agotados los
// reintentos escala como ErrOperationFailed; otros errores salen directo.
func (a *Assigner) assignWithRetry(ctx context.Context, orderID int64, user string, onlyUnassigned bool) (int64, error) {
	var lastErr error
	for attempt := 0; attempt <= a.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			a.sleep(a.backoff(attempt))
		}
		rows, err := a.store.AssignOrder(ctx, orderID, user, onlyUnassigned, a.opts.LockTimeout)
		if err == nil {
			return rows, nil
		}
		if !errors.Is(err, domain.ErrLockContention) {
			return 0, err
		}
		lastErr = err
	}
	return 0, fmt.Errorf("%w: contención persistente: %v", domain.ErrOperationFailed, lastErr)
}

// backoff exponencial con jitter: base*2^(attempt-1) + U(0, base).
func (a *Assigner) backoff(attempt int) time.Duration {
	d := a.opts.BackoffBase << (attempt - 1)
	return d + time.Duration(a.rnd.Int63n(int64(a.opts.BackoffBase)))
}

func (a *Assigner) invalidate(ctx context.Context) {
	_ = a.cache.DeletePattern(ctx, "sap:orders:*")
	_ = a.cache.DeletePattern(ctx, "sap:lines:*")
}
