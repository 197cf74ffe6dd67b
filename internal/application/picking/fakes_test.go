package picking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

// fakeStore tabla sap en memoria. Implementa a la vez el puerto de lectura y
// el de escritura, como la tabla real.
type fakeStore struct {
	lines []*entity.OrderLine
	now   func() time.Time

	// errores inyectados por pedido para AssignOrder (se consumen por llamada)
	assignErrs map[int64][]error
	assignCalls int
}

func newFakeStore(now func() time.Time) *fakeStore {
	return &fakeStore{now: now, assignErrs: map[int64][]error{}}
}

func (s *fakeStore) addLine(orderID int64, client, sku string, qty int64, assigned string) *entity.OrderLine {
	l := &entity.OrderLine{
		OrderID: orderID, Client: client, SKU: sku,
		Quantity: decimal.NewFromInt(qty), AssignedUser: assigned,
	}
	s.lines = append(s.lines, l)
	return l
}

func (s *fakeStore) orderLines(orderID int64) []*entity.OrderLine {
	var out []*entity.OrderLine
	for _, l := range s.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// ── repository.OrderRepository ───────────────────────────────────────────────

func (s *fakeStore) ListOrders(_ context.Context, filter, assignedTo string, limit int) ([]entity.OrderSummary, error) {
	seen := map[int64]bool{}
	var out []entity.OrderSummary
	for _, l := range s.lines {
		if seen[l.OrderID] {
			continue
		}
		if assignedTo != "" && l.AssignedUser != assignedTo {
			continue
		}
		if filter != "" &&
			!strings.Contains(fmt.Sprint(l.OrderID), filter) &&
			!strings.Contains(l.Client, filter) &&
			!strings.Contains(l.RegionTag, filter) {
			continue
		}
		seen[l.OrderID] = true
		out = append(out, entity.OrderSummary{
			OrderID: l.OrderID, Client: l.Client,
			AssignedUser: l.AssignedUser, RegionTag: l.RegionTag, CompanyTag: l.CompanyTag,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID > out[j].OrderID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) GetOrderLines(_ context.Context, orderID int64) ([]entity.OrderLine, error) {
	var out []entity.OrderLine
	for _, l := range s.orderLines(orderID) {
		out = append(out, *l)
	}
	return out, nil
}

func (s *fakeStore) GetUserProgress(_ context.Context) ([]entity.UserProgress, error) {
	byUser := map[string]*entity.UserProgress{}
	orders := map[string]map[int64]bool{}
	for _, l := range s.lines {
		if l.AssignedUser == "" {
			continue
		}
		p, ok := byUser[l.AssignedUser]
		if !ok {
			p = &entity.UserProgress{User: l.AssignedUser, QtyTotal: decimal.Zero, QtyPicked: decimal.Zero}
			byUser[l.AssignedUser] = p
			orders[l.AssignedUser] = map[int64]bool{}
		}
		orders[l.AssignedUser][l.OrderID] = true
		p.LineCount++
		p.QtyTotal = p.QtyTotal.Add(l.Quantity)
		if l.Picked {
			p.QtyPicked = p.QtyPicked.Add(l.Quantity)
		}
	}
	var out []entity.UserProgress
	for u, p := range byUser {
		p.OrderCount = len(orders[u])
		if !p.QtyTotal.IsZero() {
			p.Pct = int(p.QtyPicked.Mul(decimal.NewFromInt(100)).Div(p.QtyTotal).Round(0).IntPart())
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User < out[j].User })
	return out, nil
}

func (s *fakeStore) GetOrderTiming(_ context.Context, orderID int64) (*entity.OrderTiming, error) {
	now := s.now()
	t := &entity.OrderTiming{ServerNow: now}
	for _, l := range s.orderLines(orderID) {
		if l.PickedAt != nil && (t.FirstPickedAt == nil || l.PickedAt.Before(*t.FirstPickedAt)) {
			ts := *l.PickedAt
			t.FirstPickedAt = &ts
		}
	}
	if t.FirstPickedAt != nil {
		mins := now.Sub(*t.FirstPickedAt).Minutes()
		t.ElapsedMinutes = &mins
	}
	return t, nil
}

// ── repository.PickingRepository ─────────────────────────────────────────────

func (s *fakeStore) SetLinePicked(_ context.Context, orderID int64, sku string, picked bool) (int64, error) {
	for _, l := range s.lines {
		if l.OrderID == orderID && l.SKU == sku {
			l.Picked = picked
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeStore) SealFirstPick(_ context.Context, orderID int64, now time.Time) error {
	for _, l := range s.orderLines(orderID) {
		if l.PickedAt == nil {
			ts := now
			l.PickedAt = &ts
		}
	}
	return nil
}

func (s *fakeStore) ConfirmOrder(_ context.Context, orderID int64, now time.Time) (int64, error) {
	var rows int64
	for _, l := range s.orderLines(orderID) {
		l.Picked = true
		if l.PickedAt == nil {
			ts := now
			l.PickedAt = &ts
		}
		tc := now
		l.ConfirmedAt = &tc
		rows++
	}
	return rows, nil
}

func (s *fakeStore) ListOrderIDs(_ context.Context, mode repository.AssignMode) ([]int64, error) {
	seen := map[int64]bool{}
	var out []int64
	for _, l := range s.lines {
		if seen[l.OrderID] {
			continue
		}
		if mode == repository.AssignUnassignedOnly && strings.TrimSpace(l.AssignedUser) != "" {
			continue
		}
		seen[l.OrderID] = true
		out = append(out, l.OrderID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *fakeStore) AssignOrder(_ context.Context, orderID int64, user string, onlyUnassigned bool, _ time.Duration) (int64, error) {
	s.assignCalls++
	if errs := s.assignErrs[orderID]; len(errs) > 0 {
		err := errs[0]
		s.assignErrs[orderID] = errs[1:]
		return 0, err
	}
	var rows int64
	for _, l := range s.orderLines(orderID) {
		if onlyUnassigned && strings.TrimSpace(l.AssignedUser) != "" {
			continue // guarda re-chequeada en el propio UPDATE
		}
		l.AssignedUser = user
		rows++
	}
	return rows, nil
}

// ── Cache ────────────────────────────────────────────────────────────────────

// nopCache cache deshabilitado que registra las invalidaciones.
type nopCache struct {
	deleted []string
}

var errCacheMiss = errors.New("cache miss")

func (c *nopCache) Get(context.Context, string, interface{}) error { return errCacheMiss }
func (c *nopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (c *nopCache) DeletePattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	return nil
}
