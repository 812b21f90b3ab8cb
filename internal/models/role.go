package models

import "fmt"

// Role is the closed set of user roles. Public self-registration always
// produces RoleCustomer; the other roles are provisioned out of band.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
	RoleDelivery Role = "DELIVERY"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSupplier, RoleDelivery:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a stored role string back into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
