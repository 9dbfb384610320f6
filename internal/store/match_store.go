package store

import (
	"context"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/jmoiron/sqlx"
)

// MatchStore persists matches together with the goals and cards they own.
// The write path runs inside a caller-provided transaction so a failed save
// never leaves a half-written match behind.
type MatchStore struct {
	db *sqlx.DB
}

const (
	getMatchQuery         = "SELECT * FROM matches WHERE id = ?"
	listMatchesQuery      = "SELECT * FROM matches WHERE season_id = ? ORDER BY matchday, kickoff"
	deleteMatchQuery      = "DELETE FROM matches WHERE id = ?"
	getGoalsQuery         = "SELECT * FROM goals WHERE match_id = ? ORDER BY id"
	getCardsQuery         = "SELECT * FROM cards WHERE match_id = ? ORDER BY id"
	updateMatchScoreQuery = "UPDATE matches SET home_score = ?, away_score = ? WHERE id = ?"

	createMatchQuery = `
		INSERT INTO matches (season_id, matchday, kickoff, home_team_id, away_team_id,
			home_team_name, away_team_name, home_score, away_score, referee, extras)
		VALUES (:season_id, :matchday, :kickoff, :home_team_id, :away_team_id,
			:home_team_name, :away_team_name, :home_score, :away_score, :referee, :extras)
	`

	createGoalsQuery = `
		INSERT INTO goals (match_id, team_id, scorer_player_id, assist_player_id, minute, period, goal_type, extras)
		VALUES (:match_id, :team_id, :scorer_player_id, :assist_player_id, :minute, :period, :goal_type, :extras)
	`

	createCardsQuery = `
		INSERT INTO cards (match_id, team_id, player_id, minute, period, card_type, extras)
		VALUES (:match_id, :team_id, :player_id, :minute, :period, :card_type, :extras)
	`
)

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) CreateMatch(ctx context.Context, tx *sqlx.Tx, match *football.Match) error {
	res, err := tx.NamedExecContext(ctx, createMatchQuery, match)
	if err != nil {
		return err
	}
	match.ID, err = res.LastInsertId()
	return err
}

func (s *MatchStore) CreateGoals(ctx context.Context, tx *sqlx.Tx, goals []football.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, createGoalsQuery, goals)
	return err
}

func (s *MatchStore) CreateCards(ctx context.Context, tx *sqlx.Tx, cards []football.Card) error {
	if len(cards) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, createCardsQuery, cards)
	return err
}

func (s *MatchStore) UpdateMatchScore(ctx context.Context, tx *sqlx.Tx, matchID int64, homeScore, awayScore int) error {
	_, err := tx.ExecContext(ctx, updateMatchScoreQuery, homeScore, awayScore, matchID)
	return err
}

func (s *MatchStore) GetMatch(ctx context.Context, id int64) (*football.Match, error) {
	var m football.Match
	if err := s.db.GetContext(ctx, &m, getMatchQuery, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MatchStore) ListMatchesBySeason(ctx context.Context, seasonID int64) ([]football.Match, error) {
	var matches []football.Match
	err := s.db.SelectContext(ctx, &matches, listMatchesQuery, seasonID)
	return matches, err
}

func (s *MatchStore) GetGoals(ctx context.Context, matchID int64) ([]football.Goal, error) {
	var goals []football.Goal
	err := s.db.SelectContext(ctx, &goals, getGoalsQuery, matchID)
	return goals, err
}

func (s *MatchStore) GetCards(ctx context.Context, matchID int64) ([]football.Card, error) {
	var cards []football.Card
	err := s.db.SelectContext(ctx, &cards, getCardsQuery, matchID)
	return cards, err
}

// DeleteMatch removes the match; the schema cascades the delete to its goals
// and cards.
func (s *MatchStore) DeleteMatch(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, deleteMatchQuery, id)
	return err
}
