package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password must be at least 6 characters long")
	ErrUsernameTooShort        = errors.New("username must be at least 3 characters long")
	ErrUsernameHasSpaces       = errors.New("username cannot contain spaces, use underscores instead")
	ErrEmailRequired           = errors.New("email is required")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrPlayerNameRequired      = errors.New("player name is required")
	ErrGameDateRequired        = errors.New("game date is required")
	ErrGameSameTeams           = errors.New("home and away teams cannot be the same")
	ErrGameInvalidStatus       = errors.New("invalid game status provided")
	ErrStatKeysRequired        = errors.New("player id and game id are required")
	ErrStatHitsExceedAtBats    = errors.New("hits cannot exceed at-bats")
	ErrLogoTypeNotAllowed      = errors.New("file type not allowed, use JPEG, PNG, WebP or SVG")
	ErrLogoTooLarge            = errors.New("file is too large, maximum size is 5MB")
	ErrLogoStorageDisabled     = errors.New("logo storage is not configured")
	ErrRoleInvalid             = errors.New("invalid role provided")
	ErrRequestTargetNotVisitor = errors.New("role change can only be requested for users in the visitor role")

	// Ошибки конфликтов
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username already exists")
	ErrTeamNameConflict     = errors.New("team name is already in use")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrSelfDemotionForbidden  = errors.New("you cannot remove your own developer privileges")
	ErrRequestCreateForbidden = errors.New("only an admin can create a role change request")
	ErrRequestReviewForbidden = errors.New("only a developer can review a role change request")
	ErrRequestAlreadyReviewed = errors.New("role change request has already been reviewed")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrStatNotFound        = errors.New("player stat not found")
	ErrRoleRequestNotFound = errors.New("role change request not found")
)
