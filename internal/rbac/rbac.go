// Package rbac holds the compiled-in role to permission table.
package rbac

// Role is the role stored on a user record.
type Role string

const (
	RoleSuperAdmin   Role = "SuperAdmin"
	RoleProjectAdmin Role = "ProjectAdmin"
	RoleManager      Role = "Manager"
	RoleClient       Role = "Client"
)

// Permission names an action a route guard can require.
type Permission string

const (
	GetUsers       Permission = "GET_USERS"
	CreateUser     Permission = "CREATE_USER"
	UpdateUser     Permission = "UPDATE_USER"
	DeleteUser     Permission = "DELETE_USER"
	CreateCategory Permission = "CREATE_CATEGORY"
	UpdateCategory Permission = "UPDATE_CATEGORY"
	DeleteCategory Permission = "DELETE_CATEGORY"

	// Wildcard grants every permission.
	Wildcard Permission = "*"
)

var permissions = map[Role][]Permission{
	RoleSuperAdmin: {Wildcard},
	RoleProjectAdmin: {
		GetUsers, CreateUser, UpdateUser, DeleteUser,
		CreateCategory, UpdateCategory, DeleteCategory,
	},
	RoleManager: {
		GetUsers,
		CreateCategory, UpdateCategory, DeleteCategory,
	},
	RoleClient: {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := permissions[r]
	return ok
}

// Allowed reports whether role may perform permission. Unknown roles are
// never allowed.
func Allowed(role Role, permission Permission) bool {
	for _, p := range permissions[role] {
		if p == Wildcard || p == permission {
			return true
		}
	}
	return false
}

// Permissions returns a copy of the permission set granted to role.
func Permissions(role Role) []Permission {
	set := permissions[role]
	out := make([]Permission, len(set))
	copy(out, set)
	return out
}
