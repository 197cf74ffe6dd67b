// Package access concentra la matriz de capacidades por rol:
//
//	capacidad                    picker  operador  jefe  admin
//	ver pedidos propios            sí       sí      sí     sí
//	ver todos los pedidos          no       sí      sí     sí
//	ver avance del equipo          no       no      sí     sí
//	gestionar usuarios / reparto   no       no      no     sí
package access

import "github.com/jhoicas/picking-api/internal/domain/entity"

// CanViewAllOrders indica si el rol ve el listado completo de pedidos.
// Un picker solo ve los pedidos asignados a su usuario.
func CanViewAllOrders(role string) bool {
	switch role {
	case entity.RoleOperador, entity.RoleJefe, entity.RoleAdmin:
		return true
	}
	return false
}

// CanViewProgress indica si el rol accede al tablero de avance por picker.
func CanViewProgress(role string) bool {
	return role == entity.RoleJefe || role == entity.RoleAdmin
}

// CanManage indica si el rol puede crear usuarios y lanzar el reparto masivo.
func CanManage(role string) bool {
	return role == entity.RoleAdmin
}

// CanOpenOrder decide si (username, role) puede abrir el detalle de un pedido
// cuyo usr_pick es assignedUser. Cualquier rol distinto de picker abre todo;
// un picker solo abre pedidos asignados a él.
func CanOpenOrder(role, username, assignedUser string) bool {
	if role != entity.RolePicker {
		return true
	}
	return username != "" && username == assignedUser
}
