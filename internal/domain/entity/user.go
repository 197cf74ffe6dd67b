package entity

import "time"

// Roles válidos para User.
const (
	RolePicker   = "picker"
	RoleOperador = "operador"
	RoleJefe     = "jefe"
	RoleAdmin    = "admin"
)

// ValidRole indica si s es uno de los roles conocidos.
func ValidRole(s string) bool {
	switch s {
	case RolePicker, RoleOperador, RoleJefe, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario de la tabla usuarios.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // picker, operador, jefe, admin
	CreatedAt    time.Time
}
