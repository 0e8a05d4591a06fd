package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		role Role
		want []Permission
	}{
		{RoleAdmin, []Permission{PermManageUsers, PermManageVisitors, PermViewReports, PermManageSettings, PermCheckInVisitors}},
		{RoleVisitor, []Permission{PermViewOwnProfile, PermRequestVisit}},
		{RoleGuard, []Permission{PermViewVisitors, PermCheckInVisitors}},
		{RoleReceptionist, []Permission{PermViewVisitors, PermCheckInVisitors, PermViewReports}},
		{Role("janitor"), []Permission{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, PermissionsFor(tt.role))
		})
	}
}

func TestPermissionsForIsDeterministic(t *testing.T) {
	assert.Equal(t, PermissionsFor(RoleAdmin), PermissionsFor(RoleAdmin))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleGuard, PermCheckInVisitors))
	assert.False(t, HasPermission(RoleGuard, PermManageVisitors))
	assert.False(t, HasPermission(RoleVisitor, PermCheckInVisitors))
}

func TestNewUserViewDerivesPermissions(t *testing.T) {
	view := NewUserView(&User{Name: "Rina", Role: RoleVisitor})
	assert.Equal(t, PermissionsFor(RoleVisitor), view.Permissions)
	assert.Equal(t, "Rina", view.Name)
}
