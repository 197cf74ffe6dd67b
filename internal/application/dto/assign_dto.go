package dto

// BulkAssignRequest reparto masivo de pedidos entre pickers.
// Mode: "ALL" reasigna todo; "UNASSIGNED_ONLY" solo pedidos sin usr_pick.
type BulkAssignRequest struct {
	Pickers []string `json:"pickers"`
	Mode    string   `json:"mode"`
}

// BulkAssignResponse resultado del reparto: pedidos con al menos una fila
// cambiada y filas acumuladas. La operación es best-effort: lo ya asignado
// no se revierte aunque un pedido posterior falle.
type BulkAssignResponse struct {
	OrdersAffected int    `json:"orders_affected"`
	LinesAffected  int64  `json:"lines_affected"`
	Message        string `json:"message,omitempty"`
}

// SetPickedRequest cambio del flag de una línea.
type SetPickedRequest struct {
	Picked bool `json:"picked"`
}
