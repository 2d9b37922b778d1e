package models

// Capability decides whether a user may use a group of endpoints.
type Capability func(u *User) bool

// CanManageOrders covers order, product, custom-order, reservation and
// sales-insight administration.
func CanManageOrders(u *User) bool {
	return u != nil && u.IsActive && (u.Role == RoleAdmin || u.Role == RoleOwner)
}

// CanManageAdmins covers admin-account management and owner insights.
func CanManageAdmins(u *User) bool {
	return u != nil && u.IsActive && u.Role == RoleOwner
}
