package entity

import "time"

// Roles válidos para User.
const (
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleVendor     = "vendor"
	RoleAdmin      = "admin"
)

// IsValidRole valida un rol.
func IsValidRole(r string) bool {
	switch r {
	case RoleManager, RoleSupervisor, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company salvo admin).
type User struct {
	ID        string
	CompanyID string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vendor representa un punto de venta propiedad de un usuario con rol vendor.
// IsGovernment exime de precio las órdenes en que participa.
type Vendor struct {
	ID           string
	OwnerID      string
	Name         string
	Address      string
	IsGovernment bool
}
