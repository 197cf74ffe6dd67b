package picking

import (
	"context"
	"time"

	"github.com/jhoicas/picking-api/internal/domain/entity"
)

// Viewer identidad request-scoped del usuario que consulta u opera.
// Se pasa explícitamente a cada caso de uso; no hay estado de sesión ambiente.
type Viewer struct {
	Username string
	Role     string
}

// Cache puerto del cache de lecturas sobre sap. TTL corto; toda escritura del
// motor invalida las claves afectadas para conservar read-your-writes.
// La implementación Redis vive en infrastructure/cache; deshabilitada se
// comporta como miss permanente y la app consulta directo a la DB.
type Cache interface {
	// Get deserializa el valor cacheado en value; error si la clave no existe
	// o el cache está deshabilitado.
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// DeletePattern borra todas las claves que matchean el patrón (glob Redis).
	DeletePattern(ctx context.Context, pattern string) error
}

// SheetGenerator genera la hoja de picking imprimible de un pedido.
type SheetGenerator interface {
	GeneratePickingSheet(ctx context.Context, orderID int64, client, assignedUser string, lines []entity.OrderLine) ([]byte, error)
}
