package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/picking-api/internal/domain/access"
	"github.com/jhoicas/picking-api/internal/domain/entity"
)

func TestMatrizDeCapacidades(t *testing.T) {
	cases := []struct {
		role         string
		viewAll      bool
		viewProgress bool
		manage       bool
	}{
		{entity.RolePicker, false, false, false},
		{entity.RoleOperador, true, false, false},
		{entity.RoleJefe, true, true, false},
		{entity.RoleAdmin, true, true, true},
		{"desconocido", false, false, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.viewAll, access.CanViewAllOrders(c.role), "ver todos: %s", c.role)
		assert.Equal(t, c.viewProgress, access.CanViewProgress(c.role), "avance: %s", c.role)
		assert.Equal(t, c.manage, access.CanManage(c.role), "gestionar: %s", c.role)
	}
}

func TestCanOpenOrder(t *testing.T) {
	// Un picker solo abre pedidos asignados a su usuario.
	assert.True(t, access.CanOpenOrder(entity.RolePicker, "mgomez", "mgomez"))
	assert.False(t, access.CanOpenOrder(entity.RolePicker, "mgomez", "otro"))
	assert.False(t, access.CanOpenOrder(entity.RolePicker, "mgomez", ""))
	assert.False(t, access.CanOpenOrder(entity.RolePicker, "", ""))

	// El resto de roles abre cualquier pedido.
	assert.True(t, access.CanOpenOrder(entity.RoleOperador, "x", ""))
	assert.True(t, access.CanOpenOrder(entity.RoleJefe, "x", "otro"))
	assert.True(t, access.CanOpenOrder(entity.RoleAdmin, "", ""))
}
