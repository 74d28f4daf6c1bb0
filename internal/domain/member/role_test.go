package member

import "testing"

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role       Role
		permission Permission
		want       bool
	}{
		{RoleOwner, PermissionOrgManage, true},
		{RoleOwner, PermissionApplicationsReview, true},
		{RoleOfficer, PermissionMembersManage, true},
		{RoleOfficer, PermissionOrgManage, false},
		{RoleHR, PermissionApplicationsReview, true},
		{RoleHR, PermissionOnboardingManage, true},
		{RoleHR, PermissionMembersManage, false},
		{RoleHR, PermissionDocumentsManage, false},
		{RoleMember, PermissionApplicationsReview, false},
		{RoleMember, PermissionStatsView, false},
		{Role("ghost"), PermissionStatsView, false},
	}

	for _, c := range cases {
		if got := HasPermission(c.role, c.permission); got != c.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", c.role, c.permission, got, c.want)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleOwner, RoleMember, true},
		{RoleOwner, RoleOwner, true},
		{RoleOfficer, RoleHR, true},
		{RoleHR, RoleOfficer, false},
		{RoleMember, RoleMember, true},
		{RoleMember, RoleHR, false},
		{Role("ghost"), RoleMember, false},
	}

	for _, c := range cases {
		if got := c.role.AtLeast(c.min); got != c.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", c.role, c.min, got, c.want)
		}
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range ValidRoles() {
		if !role.IsValid() {
			t.Errorf("%s.IsValid() = false, want true", role)
		}
	}
	if Role("admiral").IsValid() {
		t.Error(`Role("admiral").IsValid() = true, want false`)
	}
}
