package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
)

type UserService interface {
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateUserRole — прямая смена роли разработчиком, в обход
	// заявочного процесса. Снятие собственной роли developer запрещено
	// безусловно.
	UpdateUserRole(ctx context.Context, actorUID string, actorRole models.UserRole, targetUID string, newRole models.UserRole) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, actorUID string, actorRole models.UserRole, targetUID string, newRole models.UserRole) (*models.User, error) {
	if !models.IsValidRole(newRole) {
		return nil, ErrRoleInvalid
	}
	if !models.HasPermission(actorRole, models.PermissionChangeRoles) {
		return nil, ErrForbiddenOperation
	}
	if actorUID == targetUID && actorRole == models.RoleDeveloper && newRole != models.RoleDeveloper {
		return nil, ErrSelfDemotionForbidden
	}

	if err := s.userRepo.UpdateRole(ctx, targetUID, newRole); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	user, err := s.userRepo.GetByUID(ctx, targetUID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
