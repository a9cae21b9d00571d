package models

import "time"

// GameStatus представляет статусы игры, соответствующие ENUM в БД.
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusCompleted  GameStatus = "completed"
	GameStatusCancelled  GameStatus = "cancelled"
)

type Game struct {
	ID         string     `json:"id" db:"id"`
	Date       time.Time  `json:"date" db:"date"`
	HomeTeamID *string    `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID *string    `json:"away_team_id,omitempty" db:"away_team_id"`
	HomeScore  int        `json:"home_score" db:"home_score"`
	AwayScore  int        `json:"away_score" db:"away_score"`
	Location   *string    `json:"location,omitempty" db:"location"`
	Status     GameStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`

	HomeTeamName *string      `json:"home_team_name,omitempty" db:"-"`
	AwayTeamName *string      `json:"away_team_name,omitempty" db:"-"`
	Stats        []PlayerStat `json:"stats,omitempty" db:"-"`
}

func IsValidGameStatus(status GameStatus) bool {
	switch status {
	case GameStatusScheduled, GameStatusInProgress, GameStatusCompleted, GameStatusCancelled:
		return true
	default:
		return false
	}
}
