package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleClient, OwnCart, true},
		{RoleClient, ListOrders, false},
		{RoleStaff, SetOrderStatus, true},
		{RoleStaff, ToggleStock, true},
		{RoleStaff, DeleteProducts, false},
		{RoleStaff, ManageUsers, false},
		{RoleStaff, AdminDashboard, false},
		{RoleAdmin, DeleteProducts, true},
		{RoleAdmin, StaffDashboard, true},
		{Role("ghost"), OwnCart, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Can(tc.role, tc.cap), "%s/%s", tc.role, tc.cap)
	}
}

func TestRequireOwner(t *testing.T) {
	client := Actor{UserID: 7, Role: RoleClient}
	admin := Actor{UserID: 1, Role: RoleAdmin}

	assert.NoError(t, client.RequireOwner(OwnCart, 7))
	assert.ErrorIs(t, client.RequireOwner(OwnCart, 8), ErrForbidden)
	assert.NoError(t, admin.RequireOwner(OwnCart, 8))
	assert.ErrorIs(t, Actor{UserID: 7, Role: RoleStaff}.RequireOwner(OwnCart, 7), ErrForbidden)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("staff")
	assert.True(t, ok)
	assert.Equal(t, RoleStaff, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
