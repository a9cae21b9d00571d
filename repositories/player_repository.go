package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, jersey_number, position, team_id, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID,
		player.Name,
		player.JerseyNumber,
		player.Position,
		player.TeamID,
		player.DateOfBirth,
	).Scan(&player.CreatedAt)

	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT p.id, p.name, p.jersey_number, p.position, p.team_id, p.date_of_birth, p.created_at, t.name
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE p.id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

// GetByName сопоставляет игрока по точному имени без учёта регистра.
// Используется при разборе CSV-импорта.
func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `
		SELECT p.id, p.name, p.jersey_number, p.position, p.team_id, p.date_of_birth, p.created_at, t.name
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE lower(p.name) = lower($1)`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT p.id, p.name, p.jersey_number, p.position, p.team_id, p.date_of_birth, p.created_at, t.name
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		ORDER BY p.name ASC`
	return r.listPlayers(ctx, query)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	query := `
		SELECT p.id, p.name, p.jersey_number, p.position, p.team_id, p.date_of_birth, p.created_at, t.name
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE p.team_id = $1
		ORDER BY p.jersey_number ASC NULLS LAST`
	return r.listPlayers(ctx, query, teamID)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM players`).Scan(&count)
	return count, err
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			jersey_number = $2,
			position = $3,
			team_id = $4,
			date_of_birth = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.JerseyNumber,
		player.Position,
		player.TeamID,
		player.DateOfBirth,
		player.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	// Статистика игрока удаляется каскадно (FK ON DELETE CASCADE).
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		if pqErr.Constraint == "players_team_id_fkey" {
			return ErrPlayerTeamInvalid
		}
	}
	return err
}

func (r *postgresPlayerRepository) scanPlayer(row *sql.Row) (*models.Player, error) {
	player := &models.Player{}
	var teamName sql.NullString

	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.JerseyNumber,
		&player.Position,
		&player.TeamID,
		&player.DateOfBirth,
		&player.CreatedAt,
		&teamName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if teamName.Valid {
		player.TeamName = &teamName.String
	}
	return player, nil
}

func (r *postgresPlayerRepository) listPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		var teamName sql.NullString
		if err := rows.Scan(
			&player.ID,
			&player.Name,
			&player.JerseyNumber,
			&player.Position,
			&player.TeamID,
			&player.DateOfBirth,
			&player.CreatedAt,
			&teamName,
		); err != nil {
			return nil, err
		}
		if teamName.Valid {
			player.TeamName = &teamName.String
		}
		players = append(players, player)
	}
	return players, rows.Err()
}
