package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		permission Permission
		want       bool
	}{
		{"super admin gets anything", RoleSuperAdmin, Permission("ANYTHING_AT_ALL"), true},
		{"super admin deletes users", RoleSuperAdmin, DeleteUser, true},
		{"client cannot list users", RoleClient, GetUsers, false},
		{"client cannot create category", RoleClient, CreateCategory, false},
		{"manager creates category", RoleManager, CreateCategory, true},
		{"manager lists users", RoleManager, GetUsers, true},
		{"manager cannot delete users", RoleManager, DeleteUser, false},
		{"project admin deletes users", RoleProjectAdmin, DeleteUser, true},
		{"project admin unknown permission", RoleProjectAdmin, Permission("MANAGE_BILLING"), false},
		{"unknown role", Role("Intern"), GetUsers, false},
		{"empty role", Role(""), GetUsers, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.permission))
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleProjectAdmin, RoleManager, RoleClient} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("superadmin").Valid())
}

func TestPermissionsReturnsCopy(t *testing.T) {
	got := Permissions(RoleManager)
	got[0] = DeleteUser
	assert.False(t, Allowed(RoleManager, DeleteUser))
}
