package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrUserAlreadyExists = errors.New("el usuario ya existe")
	ErrLockContention    = errors.New("contención de bloqueo en la tabla")
	ErrOperationFailed   = errors.New("la operación no pudo completarse")
)
