package models

type Permission string

const (
	PermManageUsers     Permission = "manage_users"
	PermManageVisitors  Permission = "manage_visitors"
	PermViewReports     Permission = "view_reports"
	PermManageSettings  Permission = "manage_settings"
	PermViewVisitors    Permission = "view_visitors"
	PermCheckInVisitors Permission = "check_in_visitors"
	PermViewOwnProfile  Permission = "view_own_profile"
	PermRequestVisit    Permission = "request_visit"
)

// PermissionsFor derives the permission set of a role. Unknown roles get none.
func PermissionsFor(role Role) []Permission {
	switch role {
	case RoleAdmin:
		return []Permission{PermManageUsers, PermManageVisitors, PermViewReports, PermManageSettings, PermCheckInVisitors}
	case RoleReceptionist:
		return []Permission{PermViewVisitors, PermCheckInVisitors, PermViewReports}
	case RoleGuard:
		return []Permission{PermViewVisitors, PermCheckInVisitors}
	case RoleVisitor:
		return []Permission{PermViewOwnProfile, PermRequestVisit}
	default:
		return []Permission{}
	}
}

func HasPermission(role Role, perm Permission) bool {
	for _, p := range PermissionsFor(role) {
		if p == perm {
			return true
		}
	}
	return false
}
