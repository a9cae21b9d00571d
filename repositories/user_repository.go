package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserUsernameConflict = errors.New("user username conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateUsername(ctx context.Context, uid string, username string) error
	UpdateRole(ctx context.Context, uid string, role models.UserRole) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO user_profiles (uid, email, username, role, player_id, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.UID,
		user.Email,
		user.Username,
		user.Role,
		user.PlayerID,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "user_profiles_email_key":
				return ErrUserEmailConflict
			case "user_profiles_username_key":
				return ErrUserUsernameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	query := `
		SELECT uid, email, username, role, player_id, password_hash, created_at, updated_at
		FROM user_profiles
		WHERE uid = $1`
	return r.scanUser(ctx, query, uid)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT uid, email, username, role, player_id, password_hash, created_at, updated_at
		FROM user_profiles
		WHERE lower(email) = lower($1)`
	return r.scanUser(ctx, query, email)
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT uid, email, username, role, player_id, password_hash, created_at, updated_at
		FROM user_profiles
		WHERE lower(username) = lower($1)`
	return r.scanUser(ctx, query, username)
}

// List возвращает всех пользователей, новые первыми.
func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT uid, email, username, role, player_id, password_hash, created_at, updated_at
		FROM user_profiles
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.UID,
			&user.Email,
			&user.Username,
			&user.Role,
			&user.PlayerID,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) UpdateUsername(ctx context.Context, uid string, username string) error {
	query := `UPDATE user_profiles SET username = $1, updated_at = $2 WHERE uid = $3`

	result, err := r.db.ExecContext(ctx, query, username, time.Now().UTC(), uid)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "user_profiles_username_key" {
				return ErrUserUsernameConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, uid string, role models.UserRole) error {
	query := `UPDATE user_profiles SET role = $1, updated_at = $2 WHERE uid = $3`

	result, err := r.db.ExecContext(ctx, query, role, time.Now().UTC(), uid)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.UID,
		&user.Email,
		&user.Username,
		&user.Role,
		&user.PlayerID,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
