package service

import (
	"context"
	"testing"
	"time"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/AndreaRuggieri/retbet/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchService(db *sqlx.DB) (*MatchService, *ReferenceService) {
	refStore := store.NewReferenceStore(db)
	return NewMatchService(db, store.NewMatchStore(db), refStore),
		NewReferenceService(db, refStore)
}

func kickoffAt(day int) time.Time {
	return time.Date(2025, time.September, day, 20, 45, 0, 0, time.UTC)
}

func TestSaveMatchOwnGoalScenario(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	matches, refs := newMatchService(db)
	ctx := context.Background()

	season, home, away := seedSeason(t, refs)

	match, err := matches.Save(ctx, MatchInput{
		SeasonID:   season.ID,
		Matchday:   1,
		Kickoff:    kickoffAt(14),
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		Goals: []GoalInput{
			{PlayerTeamID: home.ID, Minute: 12, Period: "1T", Type: "open_play"},
			{PlayerTeamID: away.ID, Minute: 55, Period: "2T", Type: "own_goal"},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, match.ID)

	// Own goal by an away player credits the home side: 2-0.
	assert.Equal(t, 2, match.HomeScore)
	assert.Equal(t, 0, match.AwayScore)
	assert.Equal(t, "Milan", match.HomeTeamName)
	assert.Equal(t, "Inter", match.AwayTeamName)

	detail, err := matches.Get(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Match.HomeScore)
	assert.Equal(t, 0, detail.Match.AwayScore)

	require.Len(t, detail.Goals, 2)
	assert.Equal(t, home.ID, detail.Goals[0].TeamID)
	assert.Equal(t, home.ID, detail.Goals[1].TeamID, "own goal stored against the credited team")
	assert.Equal(t, football.GoalOwnGoal, detail.Goals[1].Type)
}

func TestSaveMatchWithCards(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	matches, refs := newMatchService(db)
	ctx := context.Background()

	season, home, away := seedSeason(t, refs)

	match, err := matches.Save(ctx, MatchInput{
		SeasonID:   season.ID,
		Matchday:   3,
		Kickoff:    kickoffAt(28),
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		Referee:    "Orsato",
		Cards: []CardInput{
			{TeamID: away.ID, Minute: 33, Period: "1T", Type: "yellow"},
			{TeamID: away.ID, Minute: 78, Period: "2T", Type: "second_yellow"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, match.HomeScore)
	assert.Equal(t, 0, match.AwayScore)

	detail, err := matches.Get(ctx, match.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Match.Referee)
	assert.Equal(t, "Orsato", *detail.Match.Referee)
	require.Len(t, detail.Cards, 2)
	assert.Equal(t, football.CardSecondYellow, detail.Cards[1].Type)
}

func TestSaveMatchValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	matches, refs := newMatchService(db)
	ctx := context.Background()

	season, home, away := seedSeason(t, refs)

	tests := []struct {
		name string
		in   MatchInput
		want error
	}{
		{
			"missing season",
			MatchInput{Matchday: 1, Kickoff: kickoffAt(14), HomeTeamID: home.ID, AwayTeamID: away.ID},
			ErrTeamSelection,
		},
		{
			"same team twice",
			MatchInput{SeasonID: season.ID, Matchday: 1, Kickoff: kickoffAt(14), HomeTeamID: home.ID, AwayTeamID: home.ID},
			ErrTeamSelection,
		},
		{
			"matchday zero",
			MatchInput{SeasonID: season.ID, Kickoff: kickoffAt(14), HomeTeamID: home.ID, AwayTeamID: away.ID},
			ErrMatchdayInvalid,
		},
		{
			"goal from a third team",
			MatchInput{
				SeasonID: season.ID, Matchday: 1, Kickoff: kickoffAt(14),
				HomeTeamID: home.ID, AwayTeamID: away.ID,
				Goals: []GoalInput{{PlayerTeamID: 999, Minute: 10, Period: "1T", Type: "open_play"}},
			},
			ErrUnknownEventTeam,
		},
		{
			"unknown goal type",
			MatchInput{
				SeasonID: season.ID, Matchday: 1, Kickoff: kickoffAt(14),
				HomeTeamID: home.ID, AwayTeamID: away.ID,
				Goals: []GoalInput{{PlayerTeamID: home.ID, Minute: 10, Period: "1T", Type: "header"}},
			},
			ErrInvalidEvent,
		},
		{
			"unknown card period",
			MatchInput{
				SeasonID: season.ID, Matchday: 1, Kickoff: kickoffAt(14),
				HomeTeamID: home.ID, AwayTeamID: away.ID,
				Cards: []CardInput{{TeamID: home.ID, Minute: 100, Period: "ET", Type: "yellow"}},
			},
			ErrInvalidEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matches.Save(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	all, err := matches.ListBySeason(ctx, season.ID)
	require.NoError(t, err)
	assert.Empty(t, all, "failed saves must not leave partial matches behind")
}

func TestSaveMatchRejectsUnknownSeason(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	matches, refs := newMatchService(db)
	ctx := context.Background()

	_, home, away := seedSeason(t, refs)

	_, err := matches.Save(ctx, MatchInput{
		SeasonID: 999, Matchday: 1, Kickoff: kickoffAt(14),
		HomeTeamID: home.ID, AwayTeamID: away.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMatchRemovesGoalsAndCards(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	matches, refs := newMatchService(db)
	ctx := context.Background()

	season, home, away := seedSeason(t, refs)

	match, err := matches.Save(ctx, MatchInput{
		SeasonID: season.ID, Matchday: 1, Kickoff: kickoffAt(14),
		HomeTeamID: home.ID, AwayTeamID: away.ID,
		Goals: []GoalInput{{PlayerTeamID: home.ID, Minute: 12, Period: "1T", Type: "penalty"}},
		Cards: []CardInput{{TeamID: home.ID, Minute: 40, Period: "1T", Type: "yellow"}},
	})
	require.NoError(t, err)

	require.NoError(t, matches.Delete(ctx, match.ID))
	assert.ErrorIs(t, matches.Delete(ctx, match.ID), ErrNotFound)

	var orphans int
	require.NoError(t, db.Get(&orphans, "SELECT COUNT(*) FROM goals WHERE match_id = ?", match.ID))
	assert.Zero(t, orphans)
	require.NoError(t, db.Get(&orphans, "SELECT COUNT(*) FROM cards WHERE match_id = ?", match.ID))
	assert.Zero(t, orphans)

	_, err = matches.Get(ctx, match.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
