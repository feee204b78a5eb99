package access

type Permission string

const (
	PermissionDashboard       Permission = "dashboard"
	PermissionManageGroups    Permission = "manage_groups"
	PermissionManageChats     Permission = "manage_chats"
	PermissionNotifications   Permission = "notifications"
	PermissionAdminManagement Permission = "admin_management"
)

// AllPermissions is the full capability set, in tab order
var AllPermissions = []Permission{
	PermissionDashboard,
	PermissionManageGroups,
	PermissionManageChats,
	PermissionNotifications,
	PermissionAdminManagement,
}

const (
	RoleAdmin    = "admin"
	RoleSubadmin = "subadmin"
	RoleUser     = "user"
)

// tabs shown in the panel for each capability
var permissionTabs = map[Permission]string{
	PermissionDashboard:       "dashboard",
	PermissionManageGroups:    "groups",
	PermissionManageChats:     "chats",
	PermissionNotifications:   "notifications",
	PermissionAdminManagement: "admins",
}

func ValidPermission(p string) bool {
	_, ok := permissionTabs[Permission(p)]
	return ok
}

func ValidAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSubadmin
}

func ValidUserRole(role string) bool {
	return role == RoleUser || role == RoleSubadmin || role == RoleAdmin
}
