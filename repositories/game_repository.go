package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameTeamInvalid = errors.New("game team conflict or invalid")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	// FindByDateAndTeams ищет игру по дате и названиям команд,
	// используется при разборе CSV-импорта.
	FindByDateAndTeams(ctx context.Context, date time.Time, homeTeam, awayTeam string) (*models.Game, error)
	List(ctx context.Context, limit int) ([]models.Game, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, game *models.Game) error
	UpdateScores(ctx context.Context, id string, homeScore, awayScore int) error
	Delete(ctx context.Context, id string) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameSelect = `
	SELECT g.id, g.date, g.home_team_id, g.away_team_id, g.home_score, g.away_score,
	       g.location, g.status, g.created_at, ht.name, at.name
	FROM games g
	LEFT JOIN teams ht ON g.home_team_id = ht.id
	LEFT JOIN teams at ON g.away_team_id = at.id`

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, date, home_team_id, away_team_id, home_score, away_score, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		game.ID,
		game.Date,
		game.HomeTeamID,
		game.AwayTeamID,
		game.HomeScore,
		game.AwayScore,
		game.Location,
		game.Status,
	).Scan(&game.CreatedAt)

	return r.handleGameError(err)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	return r.scanGame(r.db.QueryRowContext(ctx, gameSelect+` WHERE g.id = $1`, id))
}

func (r *postgresGameRepository) FindByDateAndTeams(ctx context.Context, date time.Time, homeTeam, awayTeam string) (*models.Game, error) {
	query := gameSelect + `
	WHERE g.date::date = $1::date
	  AND lower(ht.name) = lower($2)
	  AND lower(at.name) = lower($3)`
	return r.scanGame(r.db.QueryRowContext(ctx, query, date, homeTeam, awayTeam))
}

// List возвращает игры, новые первыми. limit <= 0 снимает ограничение.
func (r *postgresGameRepository) List(ctx context.Context, limit int) ([]models.Game, error) {
	query := gameSelect + ` ORDER BY g.date DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		game, err := r.scanGameRow(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM games`).Scan(&count)
	return count, err
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games SET
			date = $1,
			home_team_id = $2,
			away_team_id = $3,
			home_score = $4,
			away_score = $5,
			location = $6,
			status = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		game.Date,
		game.HomeTeamID,
		game.AwayTeamID,
		game.HomeScore,
		game.AwayScore,
		game.Location,
		game.Status,
		game.ID,
	)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateScores(ctx context.Context, id string, homeScore, awayScore int) error {
	query := `UPDATE games SET home_score = $1, away_score = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM games WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "games_home_team_id_fkey", "games_away_team_id_fkey":
			return ErrGameTeamInvalid
		}
	}
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresGameRepository) scanGame(row *sql.Row) (*models.Game, error) {
	game, err := r.scanGameRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) scanGameRow(row rowScanner) (*models.Game, error) {
	game := &models.Game{}
	var homeName, awayName sql.NullString

	err := row.Scan(
		&game.ID,
		&game.Date,
		&game.HomeTeamID,
		&game.AwayTeamID,
		&game.HomeScore,
		&game.AwayScore,
		&game.Location,
		&game.Status,
		&game.CreatedAt,
		&homeName,
		&awayName,
	)
	if err != nil {
		return nil, err
	}
	if homeName.Valid {
		game.HomeTeamName = &homeName.String
	}
	if awayName.Valid {
		game.AwayTeamName = &awayName.String
	}
	return game, nil
}
