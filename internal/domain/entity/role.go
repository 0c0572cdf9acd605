// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account holds in the marketplace.
type Role string

const (
	// RoleCustomer indicates a regular shopper account.
	RoleCustomer Role = "customer"
	// RoleShopOwner indicates a shop owner account.
	RoleShopOwner Role = "shop_owner"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleShopOwner:
		return true
	default:
		return false
	}
}
