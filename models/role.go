package models

import "strings"

// UserRole представляет роль пользователя, соответствующую ENUM в БД.
type UserRole string

const (
	RoleDeveloper UserRole = "developer"
	RoleAdmin     UserRole = "admin"
	RolePlayer    UserRole = "player"
	RoleVisitor   UserRole = "visitor"
)

type Permission string

const (
	PermissionViewStats     Permission = "VIEW_STATS"
	PermissionManagePlayers Permission = "MANAGE_PLAYERS"
	PermissionManageTeams   Permission = "MANAGE_TEAMS"
	PermissionManageGames   Permission = "MANAGE_GAMES"
	PermissionManageStats   Permission = "MANAGE_STATS"
	PermissionChangeRoles   Permission = "CHANGE_ROLES"
	PermissionAccessAdmin   Permission = "ACCESS_ADMIN"
	PermissionViewDashboard Permission = "VIEW_DASHBOARD"
	PermissionExportData    Permission = "EXPORT_DATA"
	PermissionDeleteData    Permission = "DELETE_DATA"
	PermissionSystemConfig  Permission = "SYSTEM_CONFIG"
)

// roleHierarchy фиксирует порядок ролей. Неизвестная роль получает ранг 0.
var roleHierarchy = map[UserRole]int{
	RoleDeveloper: 4,
	RoleAdmin:     3,
	RolePlayer:    2,
	RoleVisitor:   1,
}

// permissionRoles — статическая таблица "разрешение -> допустимые роли".
// Таблица фиксируется на этапе сборки, динамических грантов нет.
var permissionRoles = map[Permission][]UserRole{
	PermissionViewStats:     {RoleDeveloper, RoleAdmin, RolePlayer, RoleVisitor},
	PermissionManagePlayers: {RoleDeveloper, RoleAdmin},
	PermissionManageTeams:   {RoleDeveloper, RoleAdmin},
	PermissionManageGames:   {RoleDeveloper, RoleAdmin},
	PermissionManageStats:   {RoleDeveloper, RoleAdmin},
	PermissionChangeRoles:   {RoleDeveloper},
	PermissionAccessAdmin:   {RoleDeveloper, RoleAdmin},
	PermissionViewDashboard: {RoleDeveloper, RoleAdmin, RolePlayer, RoleVisitor},
	PermissionExportData:    {RoleDeveloper, RoleAdmin},
	PermissionDeleteData:    {RoleDeveloper},
	PermissionSystemConfig:  {RoleDeveloper},
}

// HasPermission проверяет, входит ли роль в список допустимых для разрешения.
func HasPermission(role UserRole, permission Permission) bool {
	for _, allowed := range permissionRoles[permission] {
		if allowed == role {
			return true
		}
	}
	return false
}

// RoleRank возвращает позицию роли в иерархии (0 для неизвестной роли).
func RoleRank(role UserRole) int {
	return roleHierarchy[role]
}

// CanManageRole: true, если ранг актора строго выше ранга цели.
func CanManageRole(actorRole, targetRole UserRole) bool {
	return roleHierarchy[actorRole] > roleHierarchy[targetRole]
}

// IsValidRole проверяет, что строка соответствует одной из известных ролей.
func IsValidRole(role UserRole) bool {
	_, ok := roleHierarchy[role]
	return ok
}

// DetermineRole выбирает роль нового пользователя по allow-спискам email.
// По умолчанию новый пользователь получает роль "player".
func DetermineRole(email string, developerEmails, adminEmails []string) UserRole {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, dev := range developerEmails {
		if strings.ToLower(strings.TrimSpace(dev)) == normalized {
			return RoleDeveloper
		}
	}
	for _, admin := range adminEmails {
		if strings.ToLower(strings.TrimSpace(admin)) == normalized {
			return RoleAdmin
		}
	}
	return RolePlayer
}

func RoleDescription(role UserRole) string {
	switch role {
	case RoleDeveloper:
		return "Full system access, user management, and development features"
	case RoleAdmin:
		return "League management, team and player administration"
	case RolePlayer:
		return "View statistics and personal profile management"
	case RoleVisitor:
		return "Read-only access to public statistics"
	default:
		return "Basic access"
	}
}
