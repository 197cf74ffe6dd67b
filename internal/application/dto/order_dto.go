package dto

import "time"

// OrderSummaryResponse una tarjeta del listado de pedidos.
type OrderSummaryResponse struct {
	OrderID      int64  `json:"numero"`
	Client       string `json:"cliente"`
	AssignedUser string `json:"usr_pick,omitempty"`
	RegionTag    string `json:"rs,omitempty"`
	CompanyTag   string `json:"empresa,omitempty"`
}

// OrderListResponse listado de pedidos visibles para el usuario.
type OrderListResponse struct {
	Orders []OrderSummaryResponse `json:"orders"`
	Total  int                    `json:"total"`
}

// OrderLineResponse una línea del detalle.
type OrderLineResponse struct {
	SKU      string `json:"codigo"`
	ItemName string `json:"item_name,omitempty"`
	Quantity string `json:"cantidad"` // entera sin decimales cuando aplica
	Picked   bool   `json:"picked"`
}

// OrderTimingResponse tiempos y proyección del pedido.
type OrderTimingResponse struct {
	FirstPickedAt  *time.Time `json:"first_picked_at,omitempty"`
	ElapsedMinutes *float64   `json:"elapsed_minutes,omitempty"`
	ServerNow      time.Time  `json:"server_now"`
	ETA            string     `json:"eta,omitempty"`          // "2 h 5 min"; vacío si no disponible
	ProjectedEnd   *time.Time `json:"projected_end,omitempty"`
}

// OrderDetailResponse detalle completo del pedido.
type OrderDetailResponse struct {
	OrderID      int64               `json:"numero"`
	Client       string              `json:"cliente"`
	AssignedUser string              `json:"usr_pick,omitempty"`
	Lines        []OrderLineResponse `json:"lines"`
	QtyTotal     string              `json:"qty_total"`
	QtyPicked    string              `json:"qty_picked"`
	Pct          int                 `json:"pct"`
	Timing       OrderTimingResponse `json:"timing"`
}

// UserProgressResponse avance de un picker en el tablero del equipo.
type UserProgressResponse struct {
	User       string `json:"user"`
	OrderCount int    `json:"order_count"`
	LineCount  int    `json:"line_count"`
	QtyTotal   string `json:"qty_total"`
	QtyPicked  string `json:"qty_picked"`
	Pct        int    `json:"pct"`
}
