package models

import "time"

type User struct {
	UID          string    `json:"uid" db:"uid"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	Role         UserRole  `json:"role" db:"role"`
	PlayerID     string    `json:"player_id" db:"player_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Credentials struct {
	// EmailOrUsername: вход разрешён и по email, и по имени пользователя.
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}
