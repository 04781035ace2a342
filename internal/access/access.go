// Package access is the one place that decides what each role may do.
// Clients, staff and admins share the same operations; the role only
// narrows which of them are reachable.
package access

import "github.com/BruksfildServices01/food-storefront/internal/httperr"

type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleStaff, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type Capability string

const (
	OwnCart    Capability = "cart:own"
	OwnOrders  Capability = "orders:own"
	OwnProfile Capability = "profile:own"

	ListOrders     Capability = "orders:list"
	SetOrderStatus Capability = "orders:set_status"
	DeleteOrders   Capability = "orders:delete"

	ListProducts   Capability = "products:list"
	EditProducts   Capability = "products:edit"
	CreateProducts Capability = "products:create"
	DeleteProducts Capability = "products:delete"
	ToggleStock    Capability = "products:toggle_stock"

	ManageUsers Capability = "users:manage"
	ViewAudit   Capability = "audit:view"

	StaffDashboard Capability = "dashboard:staff"
	AdminDashboard Capability = "dashboard:admin"
)

var staffGrants = []Capability{
	OwnProfile,
	ListOrders,
	SetOrderStatus,
	ListProducts,
	EditProducts,
	ToggleStock,
	StaffDashboard,
}

var grants = map[Role]map[Capability]bool{
	RoleClient: set(OwnCart, OwnOrders, OwnProfile),
	RoleStaff:  set(staffGrants...),
	RoleAdmin: set(append(staffGrants,
		OwnCart,
		OwnOrders,
		DeleteOrders,
		CreateProducts,
		DeleteProducts,
		ManageUsers,
		ViewAudit,
		AdminDashboard,
	)...),
}

var ErrForbidden = httperr.NewBusiness("forbidden", "You are not allowed to do that!")

func Can(role Role, c Capability) bool {
	return grants[role][c]
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) Require(c Capability) error {
	if !Can(a.Role, c) {
		return ErrForbidden
	}
	return nil
}

// RequireOwner passes when the actor holds c and either owns the
// resource or is an admin.
func (a Actor) RequireOwner(c Capability, ownerID uint) error {
	if err := a.Require(c); err != nil {
		return err
	}
	if a.Role != RoleAdmin && a.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}

func set(caps ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return m
}
