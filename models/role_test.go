package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       models.UserRole
		permission models.Permission
		want       bool
	}{
		{"visitor can view stats", models.RoleVisitor, models.PermissionViewStats, true},
		{"visitor cannot manage teams", models.RoleVisitor, models.PermissionManageTeams, false},
		{"visitor cannot change roles", models.RoleVisitor, models.PermissionChangeRoles, false},
		{"player can view dashboard", models.RolePlayer, models.PermissionViewDashboard, true},
		{"player cannot manage stats", models.RolePlayer, models.PermissionManageStats, false},
		{"admin can manage players", models.RoleAdmin, models.PermissionManagePlayers, true},
		{"admin cannot change roles", models.RoleAdmin, models.PermissionChangeRoles, false},
		{"admin cannot delete data", models.RoleAdmin, models.PermissionDeleteData, false},
		{"developer can change roles", models.RoleDeveloper, models.PermissionChangeRoles, true},
		{"developer can configure system", models.RoleDeveloper, models.PermissionSystemConfig, true},
		{"unknown role has nothing", models.UserRole("ghost"), models.PermissionViewStats, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.HasPermission(tt.role, tt.permission))
		})
	}
}

func TestCanManageRole(t *testing.T) {
	tests := []struct {
		name   string
		actor  models.UserRole
		target models.UserRole
		want   bool
	}{
		{"developer manages admin", models.RoleDeveloper, models.RoleAdmin, true},
		{"developer manages visitor", models.RoleDeveloper, models.RoleVisitor, true},
		{"admin manages player", models.RoleAdmin, models.RolePlayer, true},
		{"admin cannot manage developer", models.RoleAdmin, models.RoleDeveloper, false},
		{"equal ranks cannot manage each other", models.RoleAdmin, models.RoleAdmin, false},
		{"visitor manages nobody", models.RoleVisitor, models.RoleVisitor, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.CanManageRole(tt.actor, tt.target))
		})
	}
}

func TestDetermineRole(t *testing.T) {
	developers := []string{"dev@example.com"}
	admins := []string{"Admin@Example.com"}

	tests := []struct {
		name  string
		email string
		want  models.UserRole
	}{
		{"developer email", "dev@example.com", models.RoleDeveloper},
		{"developer email with case and spaces", "  DEV@Example.COM ", models.RoleDeveloper},
		{"admin email case-insensitive", "admin@example.com", models.RoleAdmin},
		{"unknown email defaults to player", "someone@example.com", models.RolePlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.DetermineRole(tt.email, developers, admins))
		})
	}
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, models.IsValidRole(models.RoleDeveloper))
	assert.True(t, models.IsValidRole(models.RoleVisitor))
	assert.False(t, models.IsValidRole(models.UserRole("superuser")))
	assert.False(t, models.IsValidRole(models.UserRole("")))
}

func TestRoleRank(t *testing.T) {
	assert.Greater(t, models.RoleRank(models.RoleDeveloper), models.RoleRank(models.RoleAdmin))
	assert.Greater(t, models.RoleRank(models.RoleAdmin), models.RoleRank(models.RolePlayer))
	assert.Greater(t, models.RoleRank(models.RolePlayer), models.RoleRank(models.RoleVisitor))
	assert.Equal(t, 0, models.RoleRank(models.UserRole("ghost")))
}
