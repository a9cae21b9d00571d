package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, input SignInInput) (*models.User, error)
	// EnsureProfile разрешает внешнюю идентичность (OAuth, существующая
	// сессия) в профиль пользователя, создавая профиль при первом входе.
	EnsureProfile(ctx context.Context, email string) (*models.User, error)
	ChangeUsername(ctx context.Context, uid string, newUsername string) (*models.User, error)
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type SignInInput struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

type authService struct {
	userRepo        repositories.UserRepository
	developerEmails []string
	adminEmails     []string
}

func NewAuthService(userRepo repositories.UserRepository, developerEmails, adminEmails []string) AuthService {
	return &authService{
		userRepo:        userRepo,
		developerEmails: developerEmails,
		adminEmails:     adminEmails,
	}
}

func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}

	// Проверка занятости имени до создания. Гонка двух регистраций
	// разрешается уникальным ограничением в БД.
	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, ErrUserUsernameConflict
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UID:          uuid.NewString(),
		Email:        email,
		Username:     input.Username,
		Role:         models.DetermineRole(email, s.developerEmails, s.adminEmails),
		PlayerID:     generatePlayerID(),
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, input SignInInput) (*models.User, error) {
	identifier := strings.TrimSpace(input.EmailOrUsername)
	if identifier == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, identifier)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to find user by email: %w", err)
		}
		// Идентификатор без "@" пробуем как имя пользователя.
		if strings.Contains(identifier, "@") {
			return nil, ErrInvalidCredentials
		}
		user, err = s.userRepo.GetByUsername(ctx, identifier)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("failed to find user by username: %w", err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) EnsureProfile(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		user.PasswordHash = ""
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	// Первый вход этой идентичности: создаём профиль. Имя берётся из
	// локальной части email, при коллизии получает временной суффикс.
	username := usernameFromEmail(email)
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		username = dedupeUsername(username)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}

	user = &models.User{
		UID:      uuid.NewString(),
		Email:    email,
		Username: username,
		Role:     models.DetermineRole(email, s.developerEmails, s.adminEmails),
		PlayerID: generatePlayerID(),
		// OAuth-профили создаются без пароля.
		PasswordHash: "",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Одновременный вход с двух вкладок: второй insert проигрывает
		// по уникальному ограничению, перечитываем профиль победителя.
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			existing, getErr := s.userRepo.GetByEmail(ctx, email)
			if getErr == nil {
				existing.PasswordHash = ""
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	return user, nil
}

func (s *authService) ChangeUsername(ctx context.Context, uid string, newUsername string) (*models.User, error) {
	if err := validateUsername(newUsername); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, newUsername)
	if err == nil && existing.UID != uid {
		return nil, ErrUserUsernameConflict
	}
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}

	if err := s.userRepo.UpdateUsername(ctx, uid, newUsername); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		}
		return nil, fmt.Errorf("failed to update username: %w", err)
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
