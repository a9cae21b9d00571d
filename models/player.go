package models

import "time"

type Player struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	JerseyNumber *int       `json:"jersey_number,omitempty" db:"jersey_number"`
	Position     string     `json:"position" db:"position"`
	TeamID       *string    `json:"team_id,omitempty" db:"team_id"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	// Опциональные связанные данные (не мапятся напрямую).
	TeamName *string      `json:"team_name,omitempty" db:"-"`
	Stats    []PlayerStat `json:"stats,omitempty" db:"-"`
}
