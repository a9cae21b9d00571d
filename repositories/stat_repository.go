package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

var (
	ErrStatNotFound      = errors.New("player stat not found")
	ErrStatPlayerInvalid = errors.New("player stat player conflict or invalid")
	ErrStatGameInvalid   = errors.New("player stat game conflict or invalid")
)

type StatRepository interface {
	// Upsert вставляет запись либо полностью перезаписывает существующую
	// по ключу (player_id, game_id). Последняя запись выигрывает.
	Upsert(ctx context.Context, stat *models.PlayerStat) error
	ListByPlayer(ctx context.Context, playerID string) ([]models.PlayerStat, error)
	ListByGame(ctx context.Context, gameID string) ([]models.PlayerStat, error)
	ListAll(ctx context.Context) ([]models.PlayerStat, error)
	Delete(ctx context.Context, id string) error
}

type postgresStatRepository struct {
	db *sql.DB
}

func NewPostgresStatRepository(db *sql.DB) StatRepository {
	return &postgresStatRepository{db: db}
}

func (r *postgresStatRepository) Upsert(ctx context.Context, stat *models.PlayerStat) error {
	query := `
		INSERT INTO player_stats
			(id, player_id, game_id, at_bats, hits, runs, rbi, doubles, triples,
			 home_runs, walks, strikeouts, stolen_bases, errors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (player_id, game_id) DO UPDATE SET
			at_bats = EXCLUDED.at_bats,
			hits = EXCLUDED.hits,
			runs = EXCLUDED.runs,
			rbi = EXCLUDED.rbi,
			doubles = EXCLUDED.doubles,
			triples = EXCLUDED.triples,
			home_runs = EXCLUDED.home_runs,
			walks = EXCLUDED.walks,
			strikeouts = EXCLUDED.strikeouts,
			stolen_bases = EXCLUDED.stolen_bases,
			errors = EXCLUDED.errors,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		stat.ID,
		stat.PlayerID,
		stat.GameID,
		stat.AtBats,
		stat.Hits,
		stat.Runs,
		stat.RBI,
		stat.Doubles,
		stat.Triples,
		stat.HomeRuns,
		stat.Walks,
		stat.Strikeouts,
		stat.StolenBases,
		stat.Errors,
	).Scan(&stat.ID, &stat.CreatedAt, &stat.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "player_stats_player_id_fkey":
				return ErrStatPlayerInvalid
			case "player_stats_game_id_fkey":
				return ErrStatGameInvalid
			}
		}
		return err
	}
	return nil
}

const statSelect = `
	SELECT s.id, s.player_id, s.game_id, s.at_bats, s.hits, s.runs, s.rbi,
	       s.doubles, s.triples, s.home_runs, s.walks, s.strikeouts,
	       s.stolen_bases, s.errors, s.created_at, s.updated_at,
	       p.name, p.jersey_number, p.position, p.team_id
	FROM player_stats s
	JOIN players p ON s.player_id = p.id`

func (r *postgresStatRepository) ListByPlayer(ctx context.Context, playerID string) ([]models.PlayerStat, error) {
	query := statSelect + ` WHERE s.player_id = $1 ORDER BY s.created_at DESC`
	return r.listStats(ctx, query, playerID)
}

func (r *postgresStatRepository) ListByGame(ctx context.Context, gameID string) ([]models.PlayerStat, error) {
	query := statSelect + ` WHERE s.game_id = $1 ORDER BY p.name ASC`
	return r.listStats(ctx, query, gameID)
}

func (r *postgresStatRepository) ListAll(ctx context.Context) ([]models.PlayerStat, error) {
	return r.listStats(ctx, statSelect)
}

func (r *postgresStatRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM player_stats WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStatNotFound)
}

func (r *postgresStatRepository) listStats(ctx context.Context, query string, args ...interface{}) ([]models.PlayerStat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statsList := make([]models.PlayerStat, 0)
	for rows.Next() {
		var stat models.PlayerStat
		var playerName, position sql.NullString
		var jersey sql.NullInt64
		var teamID sql.NullString

		if err := rows.Scan(
			&stat.ID,
			&stat.PlayerID,
			&stat.GameID,
			&stat.AtBats,
			&stat.Hits,
			&stat.Runs,
			&stat.RBI,
			&stat.Doubles,
			&stat.Triples,
			&stat.HomeRuns,
			&stat.Walks,
			&stat.Strikeouts,
			&stat.StolenBases,
			&stat.Errors,
			&stat.CreatedAt,
			&stat.UpdatedAt,
			&playerName,
			&jersey,
			&position,
			&teamID,
		); err != nil {
			return nil, err
		}
		if playerName.Valid {
			stat.PlayerName = &playerName.String
		}
		if jersey.Valid {
			n := int(jersey.Int64)
			stat.JerseyNumber = &n
		}
		if position.Valid {
			stat.Position = &position.String
		}
		if teamID.Valid {
			stat.PlayerTeamID = &teamID.String
		}
		statsList = append(statsList, stat)
	}
	return statsList, rows.Err()
}
