package models

import "time"

// PlayerStat — статистика игрока за одну игру. Уникальна по паре
// (player_id, game_id); повторная запись перезаписывает предыдущую.
type PlayerStat struct {
	ID          string    `json:"id" db:"id"`
	PlayerID    string    `json:"player_id" db:"player_id"`
	GameID      string    `json:"game_id" db:"game_id"`
	AtBats      int       `json:"at_bats" db:"at_bats"`
	Hits        int       `json:"hits" db:"hits"`
	Runs        int       `json:"runs" db:"runs"`
	RBI         int       `json:"rbi" db:"rbi"`
	Doubles     int       `json:"doubles" db:"doubles"`
	Triples     int       `json:"triples" db:"triples"`
	HomeRuns    int       `json:"home_runs" db:"home_runs"`
	Walks       int       `json:"walks" db:"walks"`
	Strikeouts  int       `json:"strikeouts" db:"strikeouts"`
	StolenBases int       `json:"stolen_bases" db:"stolen_bases"`
	Errors      int       `json:"errors" db:"errors"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Опциональные связанные данные.
	PlayerName   *string `json:"player_name,omitempty" db:"-"`
	JerseyNumber *int    `json:"jersey_number,omitempty" db:"-"`
	Position     *string `json:"position,omitempty" db:"-"`
	PlayerTeamID *string `json:"player_team_id,omitempty" db:"-"`
}
