package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/AndreaRuggieri/retbet/internal/store"
	"github.com/AndreaRuggieri/retbet/internal/utils"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	db    *sqlx.DB
	store *store.MatchStore
	refs  *store.ReferenceStore
}

func NewMatchService(db *sqlx.DB, matchStore *store.MatchStore, refStore *store.ReferenceStore) *MatchService {
	return &MatchService{db: db, store: matchStore, refs: refStore}
}

type GoalInput struct {
	// Team of the player who scored or committed the own goal; the credited
	// team is derived from it, never taken from the caller.
	PlayerTeamID int64

	ScorerPlayerID *int64
	AssistPlayerID *int64

	Minute int
	Period string
	Type   string
}

type CardInput struct {
	TeamID   int64
	PlayerID *int64

	Minute int
	Period string
	Type   string
}

type MatchInput struct {
	SeasonID int64
	Matchday int
	Kickoff  time.Time

	HomeTeamID int64
	AwayTeamID int64

	Referee string
	Goals   []GoalInput
	Cards   []CardInput
	Extras  football.Extras
}

type MatchDetail struct {
	Match *football.Match `json:"match"`
	Goals []football.Goal `json:"goals"`
	Cards []football.Card `json:"cards"`
}

// Save validates the whole entry, then writes match, goals and cards in one
// transaction and stores the recomputed score on the match row.
func (s *MatchService) Save(ctx context.Context, in MatchInput) (*football.Match, error) {
	if in.SeasonID == 0 || in.HomeTeamID == 0 || in.AwayTeamID == 0 || in.HomeTeamID == in.AwayTeamID {
		return nil, ErrTeamSelection
	}
	if in.Matchday < 1 {
		return nil, ErrMatchdayInvalid
	}

	if _, err := s.refs.GetSeason(ctx, in.SeasonID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up season: %w", err)
	}
	home, err := s.refs.GetTeam(ctx, in.HomeTeamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up home team: %w", err)
	}
	away, err := s.refs.GetTeam(ctx, in.AwayTeamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up away team: %w", err)
	}

	entries := make([]football.GoalEntry, 0, len(in.Goals))
	goalTypes := make([]football.GoalType, 0, len(in.Goals))
	goalPeriods := make([]football.Period, 0, len(in.Goals))
	for _, g := range in.Goals {
		if g.PlayerTeamID != home.ID && g.PlayerTeamID != away.ID {
			return nil, ErrUnknownEventTeam
		}
		goalType, ok := football.ParseGoalType(g.Type)
		if !ok {
			return nil, ErrInvalidEvent
		}
		period, ok := football.ParsePeriod(g.Period)
		if !ok || g.Minute < 0 {
			return nil, ErrInvalidEvent
		}
		entries = append(entries, football.GoalEntry{PlayerTeamID: g.PlayerTeamID, Type: goalType})
		goalTypes = append(goalTypes, goalType)
		goalPeriods = append(goalPeriods, period)
	}

	cardTypes := make([]football.CardType, 0, len(in.Cards))
	cardPeriods := make([]football.Period, 0, len(in.Cards))
	for _, c := range in.Cards {
		if c.TeamID != home.ID && c.TeamID != away.ID {
			return nil, ErrUnknownEventTeam
		}
		cardType, ok := football.ParseCardType(c.Type)
		if !ok {
			return nil, ErrInvalidEvent
		}
		period, ok := football.ParsePeriod(c.Period)
		if !ok || c.Minute < 0 {
			return nil, ErrInvalidEvent
		}
		cardTypes = append(cardTypes, cardType)
		cardPeriods = append(cardPeriods, period)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match := &football.Match{
		SeasonID:     in.SeasonID,
		Matchday:     in.Matchday,
		Kickoff:      in.Kickoff,
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		HomeTeamName: home.Name,
		AwayTeamName: away.Name,
		Referee:      utils.StringOrNil(in.Referee),
		Extras:       in.Extras,
	}
	if err := s.store.CreateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	goals := make([]football.Goal, 0, len(in.Goals))
	for i, g := range in.Goals {
		goals = append(goals, football.Goal{
			MatchID:        match.ID,
			TeamID:         football.AttributeGoal(g.PlayerTeamID, home.ID, away.ID, goalTypes[i]),
			ScorerPlayerID: g.ScorerPlayerID,
			AssistPlayerID: g.AssistPlayerID,
			Minute:         g.Minute,
			Period:         goalPeriods[i],
			Type:           goalTypes[i],
		})
	}
	if err := s.store.CreateGoals(ctx, tx, goals); err != nil {
		return nil, fmt.Errorf("failed to create goals: %w", err)
	}

	cards := make([]football.Card, 0, len(in.Cards))
	for i, c := range in.Cards {
		cards = append(cards, football.Card{
			MatchID:  match.ID,
			TeamID:   c.TeamID,
			PlayerID: c.PlayerID,
			Minute:   c.Minute,
			Period:   cardPeriods[i],
			Type:     cardTypes[i],
		})
	}
	if err := s.store.CreateCards(ctx, tx, cards); err != nil {
		return nil, fmt.Errorf("failed to create cards: %w", err)
	}

	match.HomeScore, match.AwayScore = football.ComputeScore(entries, home.ID, away.ID)
	if err := s.store.UpdateMatchScore(ctx, tx, match.ID, match.HomeScore, match.AwayScore); err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}

	return match, tx.Commit()
}

func (s *MatchService) Get(ctx context.Context, id int64) (*MatchDetail, error) {
	match, err := s.store.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	goals, err := s.store.GetGoals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	cards, err := s.store.GetCards(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}

	return &MatchDetail{Match: match, Goals: goals, Cards: cards}, nil
}

func (s *MatchService) ListBySeason(ctx context.Context, seasonID int64) ([]football.Match, error) {
	return s.store.ListMatchesBySeason(ctx, seasonID)
}

func (s *MatchService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetMatch(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.store.DeleteMatch(ctx, id)
}
