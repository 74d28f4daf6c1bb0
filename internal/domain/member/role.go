package member

type Role string

const (
	RoleOwner   Role = "owner"   // Org founder - full access
	RoleOfficer Role = "officer" // Leadership - manages members and org settings
	RoleHR      Role = "hr"      // Runs recruitment, onboarding and reviews
	RoleMember  Role = "member"  // Regular member
)

// ValidRoles lists every assignable role.
func ValidRoles() []Role {
	return []Role{RoleOwner, RoleOfficer, RoleHR, RoleMember}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

type Permission string

const (
	// Recruitment
	PermissionApplicationsReview Permission = "applications.review"

	// Onboarding
	PermissionOnboardingManage  Permission = "onboarding.manage"
	PermissionOnboardingViewAll Permission = "onboarding.view_all"

	// Performance
	PermissionReviewsManage  Permission = "reviews.manage"
	PermissionReviewsViewAll Permission = "reviews.view_all"

	// Documents
	PermissionDocumentsManage Permission = "documents.manage"

	// Membership
	PermissionMembersManage Permission = "members.manage"

	// Organization settings
	PermissionOrgManage Permission = "org.manage"

	// Comments
	PermissionCommentsModerate Permission = "comments.moderate"

	// Dashboard
	PermissionStatsView Permission = "stats.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionApplicationsReview,
		PermissionOnboardingManage,
		PermissionOnboardingViewAll,
		PermissionReviewsManage,
		PermissionReviewsViewAll,
		PermissionDocumentsManage,
		PermissionMembersManage,
		PermissionOrgManage,
		PermissionCommentsModerate,
		PermissionStatsView,
	},
	RoleOfficer: {
		PermissionApplicationsReview,
		PermissionOnboardingManage,
		PermissionOnboardingViewAll,
		PermissionReviewsManage,
		PermissionReviewsViewAll,
		PermissionDocumentsManage,
		PermissionMembersManage,
		PermissionCommentsModerate,
		PermissionStatsView,
	},
	RoleHR: {
		PermissionApplicationsReview,
		PermissionOnboardingManage,
		PermissionOnboardingViewAll,
		PermissionReviewsManage,
		PermissionReviewsViewAll,
		PermissionStatsView,
	},
	RoleMember: {
		// Members act on their own records only
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// roleRank orders roles for visibility comparisons (documents restricted to a
// minimum role, owner-only actions).
var roleRank = map[Role]int{
	RoleMember:  1,
	RoleHR:      2,
	RoleOfficer: 3,
	RoleOwner:   4,
}

// AtLeast reports whether r is ranked at or above min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}
