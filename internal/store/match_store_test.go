package store

import (
	"context"
	"testing"
	"time"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	season football.Season
	home   football.Team
	away   football.Team
}

func createMatchFixture(t *testing.T, db *sqlx.DB) matchFixture {
	t.Helper()

	refs := NewReferenceStore(db)
	ctx := context.Background()

	country := &football.Country{Name: "Italy", Code: "ITA"}
	require.NoError(t, refs.CreateCountry(ctx, country))
	comp := &football.Competition{Name: "Serie A", CountryID: country.ID, Division: 1}
	require.NoError(t, refs.CreateCompetition(ctx, comp))
	season := &football.Season{CompetitionID: comp.ID, Name: "2025-2026"}
	require.NoError(t, refs.CreateSeason(ctx, season))

	home := &football.Team{Name: "Milan"}
	require.NoError(t, refs.CreateTeam(ctx, home))
	away := &football.Team{Name: "Inter"}
	require.NoError(t, refs.CreateTeam(ctx, away))

	return matchFixture{season: *season, home: *home, away: *away}
}

func TestCreateMatchWithGoalsAndCards(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	fx := createMatchFixture(t, db)
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)

	match := &football.Match{
		SeasonID:     fx.season.ID,
		Matchday:     1,
		Kickoff:      time.Date(2025, time.September, 14, 20, 45, 0, 0, time.UTC),
		HomeTeamID:   fx.home.ID,
		AwayTeamID:   fx.away.ID,
		HomeTeamName: fx.home.Name,
		AwayTeamName: fx.away.Name,
	}
	require.NoError(t, s.CreateMatch(ctx, tx, match))
	require.NotZero(t, match.ID)

	goals := []football.Goal{
		{MatchID: match.ID, TeamID: fx.home.ID, Minute: 12, Period: football.PeriodFirstHalf, Type: football.GoalOpenPlay},
		{MatchID: match.ID, TeamID: fx.away.ID, Minute: 67, Period: football.PeriodSecondHalf, Type: football.GoalPenalty},
	}
	require.NoError(t, s.CreateGoals(ctx, tx, goals))

	cards := []football.Card{
		{MatchID: match.ID, TeamID: fx.away.ID, Minute: 33, Period: football.PeriodFirstHalf, Type: football.CardYellow},
	}
	require.NoError(t, s.CreateCards(ctx, tx, cards))

	require.NoError(t, s.UpdateMatchScore(ctx, tx, match.ID, 1, 1))
	require.NoError(t, tx.Commit())

	fetched, err := s.GetMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.HomeScore)
	assert.Equal(t, 1, fetched.AwayScore)
	assert.Equal(t, "Milan", fetched.HomeTeamName)
	assert.Equal(t, "Inter", fetched.AwayTeamName)

	fetchedGoals, err := s.GetGoals(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, fetchedGoals, 2)
	assert.Equal(t, fx.home.ID, fetchedGoals[0].TeamID)
	assert.Equal(t, football.GoalOpenPlay, fetchedGoals[0].Type)

	fetchedCards, err := s.GetCards(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, fetchedCards, 1)
	assert.Equal(t, football.CardYellow, fetchedCards[0].Type)
}

func TestDeleteMatchCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	fx := createMatchFixture(t, db)
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)

	match := &football.Match{
		SeasonID:     fx.season.ID,
		Matchday:     1,
		Kickoff:      time.Date(2025, time.September, 14, 20, 45, 0, 0, time.UTC),
		HomeTeamID:   fx.home.ID,
		AwayTeamID:   fx.away.ID,
		HomeTeamName: fx.home.Name,
		AwayTeamName: fx.away.Name,
	}
	require.NoError(t, s.CreateMatch(ctx, tx, match))
	require.NoError(t, s.CreateGoals(ctx, tx, []football.Goal{
		{MatchID: match.ID, TeamID: fx.home.ID, Minute: 5, Period: football.PeriodFirstHalf, Type: football.GoalOpenPlay},
	}))
	require.NoError(t, s.CreateCards(ctx, tx, []football.Card{
		{MatchID: match.ID, TeamID: fx.home.ID, Minute: 80, Period: football.PeriodSecondHalf, Type: football.CardRed},
	}))
	require.NoError(t, tx.Commit())

	require.NoError(t, s.DeleteMatch(ctx, match.ID))

	var goalCount, cardCount int
	require.NoError(t, db.Get(&goalCount, "SELECT COUNT(*) FROM goals WHERE match_id = ?", match.ID))
	require.NoError(t, db.Get(&cardCount, "SELECT COUNT(*) FROM cards WHERE match_id = ?", match.ID))
	assert.Zero(t, goalCount, "goals should be removed with their match")
	assert.Zero(t, cardCount, "cards should be removed with their match")
}

func TestListMatchesBySeason(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewMatchStore(db)
	fx := createMatchFixture(t, db)
	ctx := context.Background()

	kickoff := time.Date(2025, time.September, 14, 15, 0, 0, 0, time.UTC)
	for day := 2; day >= 1; day-- {
		tx, err := db.BeginTxx(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, s.CreateMatch(ctx, tx, &football.Match{
			SeasonID:     fx.season.ID,
			Matchday:     day,
			Kickoff:      kickoff,
			HomeTeamID:   fx.home.ID,
			AwayTeamID:   fx.away.ID,
			HomeTeamName: fx.home.Name,
			AwayTeamName: fx.away.Name,
		}))
		require.NoError(t, tx.Commit())
	}

	matches, err := s.ListMatchesBySeason(ctx, fx.season.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Matchday)
	assert.Equal(t, 2, matches[1].Matchday)
}
