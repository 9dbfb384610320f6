package store

import (
	"context"
	"strings"
	"time"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/jmoiron/sqlx"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	getPlayerQuery = "SELECT * FROM players WHERE id = ?"

	createPlayerQuery = `
		INSERT INTO players (first_name, last_name, full_name, country_id, birth_date, age_years,
			macro_role, micro_roles, jersey_number, current_team_season_id, extras)
		VALUES (:first_name, :last_name, :full_name, :country_id, :birth_date, :age_years,
			:macro_role, :micro_roles, :jersey_number, :current_team_season_id, :extras)
	`

	// Identity key columns are deliberately absent: an upsert overwrites
	// attributes, never the identity itself.
	updatePlayerQuery = `
		UPDATE players SET
		full_name = :full_name,
		country_id = :country_id,
		age_years = :age_years,
		macro_role = :macro_role,
		micro_roles = :micro_roles,
		jersey_number = :jersey_number,
		extras = :extras
		WHERE id = :id
	`

	deletePlayerQuery = "DELETE FROM players WHERE id = ?"
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id int64) (*football.Player, error) {
	var p football.Player
	if err := s.db.GetContext(ctx, &p, getPlayerQuery, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlayerByIdentity looks up the row matching the upsert identity key:
// first name, last name, birth date and current team-season.
func (s *PlayerStore) GetPlayerByIdentity(ctx context.Context, firstName, lastName string, birthDate time.Time, teamSeasonID *int64) (*football.Player, error) {
	query := "SELECT * FROM players WHERE first_name = ? AND last_name = ? AND birth_date = ?"
	args := []any{firstName, lastName, birthDate}
	if teamSeasonID != nil {
		query += " AND current_team_season_id = ?"
		args = append(args, *teamSeasonID)
	} else {
		query += " AND current_team_season_id IS NULL"
	}

	var p football.Player
	if err := s.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, err
	}
	return &p, nil
}

type PlayerFilter struct {
	// Restrict to one roster; nil lists players across all team-seasons.
	TeamSeasonID *int64

	// Case-insensitive substring match on first, last or full name.
	Search string
}

func (s *PlayerStore) ListPlayers(ctx context.Context, filter PlayerFilter) ([]football.Player, error) {
	query := "SELECT * FROM players"
	var clauses []string
	var args []any

	if filter.TeamSeasonID != nil {
		clauses = append(clauses, "current_team_season_id = ?")
		args = append(args, *filter.TeamSeasonID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		clauses = append(clauses, "(first_name LIKE ? OR last_name LIKE ? OR full_name LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY last_name, first_name"

	var players []football.Player
	err := s.db.SelectContext(ctx, &players, query, args...)
	return players, err
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, p *football.Player) error {
	res, err := s.db.NamedExecContext(ctx, createPlayerQuery, p)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (s *PlayerStore) UpdatePlayer(ctx context.Context, p *football.Player) error {
	_, err := s.db.NamedExecContext(ctx, updatePlayerQuery, p)
	return err
}

func (s *PlayerStore) DeletePlayer(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, deletePlayerQuery, id)
	return err
}
