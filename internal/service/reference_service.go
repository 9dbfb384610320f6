package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/AndreaRuggieri/retbet/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// ReferenceService provides idempotent lookup-or-create for entities keyed by
// a business attribute rather than a surrogate id.
type ReferenceService struct {
	db    *sqlx.DB
	store *store.ReferenceStore
}

func NewReferenceService(db *sqlx.DB, store *store.ReferenceStore) *ReferenceService {
	return &ReferenceService{db: db, store: store}
}

// ResolveCountry returns the canonical country row for a name and 3-letter
// code. Either input empty after trimming means "no country": a valid absence
// for optional nationality fields, not an error. The code is the stronger
// unique key, so lookup tries it before the name. A lost insert race is
// recovered by re-reading the row that now exists for the code.
func (s *ReferenceService) ResolveCountry(ctx context.Context, name, code string) (*football.Country, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" || code == "" {
		return nil, nil
	}

	country, err := s.store.GetCountryByCode(ctx, code)
	if err == nil {
		return country, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up country by code: %w", err)
	}

	country, err = s.store.GetCountryByName(ctx, name)
	if err == nil {
		return country, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up country by name: %w", err)
	}

	country = &football.Country{Name: name, Code: code}
	if err := s.store.CreateCountry(ctx, country); err != nil {
		if isUniqueViolation(err) {
			return s.store.GetCountryByCode(ctx, code)
		}
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return country, nil
}

func (s *ReferenceService) ListCountries(ctx context.Context) ([]football.Country, error) {
	return s.store.ListCountries(ctx)
}

// EnsureTeam returns the team with the given name, creating it on first use.
func (s *ReferenceService) EnsureTeam(ctx context.Context, name string, crestURL *string) (*football.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	team, err := s.store.GetTeamByName(ctx, name)
	if err == nil {
		return team, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up team: %w", err)
	}

	team = &football.Team{Name: name, CrestURL: crestURL}
	if err := s.store.CreateTeam(ctx, team); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *ReferenceService) ListTeams(ctx context.Context) ([]football.Team, error) {
	return s.store.ListTeams(ctx)
}

// EnsureCompetition gets or creates the competition by name. When the row
// already exists, country and division are realigned to the submitted values.
func (s *ReferenceService) EnsureCompetition(ctx context.Context, name string, countryID int64, division int) (*football.Competition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if countryID == 0 {
		return nil, ErrCountryRequired
	}
	if division < 1 {
		return nil, ErrDivisionInvalid
	}

	if _, err := s.store.GetCountry(ctx, countryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCountryRequired
		}
		return nil, fmt.Errorf("failed to look up country: %w", err)
	}

	comp, err := s.store.GetCompetitionByName(ctx, name)
	if err == nil {
		if comp.CountryID != countryID || comp.Division != division {
			comp.CountryID = countryID
			comp.Division = division
			if err := s.store.UpdateCompetition(ctx, comp); err != nil {
				return nil, fmt.Errorf("failed to update competition: %w", err)
			}
		}
		return comp, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up competition: %w", err)
	}

	comp = &football.Competition{Name: name, CountryID: countryID, Division: division}
	if err := s.store.CreateCompetition(ctx, comp); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return comp, nil
}

func (s *ReferenceService) ListCompetitions(ctx context.Context) ([]football.Competition, error) {
	return s.store.ListCompetitions(ctx)
}

// EnsureSeason gets or creates the season named within one competition.
func (s *ReferenceService) EnsureSeason(ctx context.Context, competitionID int64, name string) (*football.Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	season, err := s.store.GetSeasonByName(ctx, competitionID, name)
	if err == nil {
		return season, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up season: %w", err)
	}

	season = &football.Season{CompetitionID: competitionID, Name: name}
	if err := s.store.CreateSeason(ctx, season); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return season, nil
}

func (s *ReferenceService) ListSeasons(ctx context.Context, competitionID int64) ([]football.Season, error) {
	return s.store.ListSeasons(ctx, competitionID)
}

// EnsureTeamSeason links a club to a competition-season, once.
func (s *ReferenceService) EnsureTeamSeason(ctx context.Context, teamID, seasonID int64) (*football.TeamSeason, error) {
	ts, err := s.store.GetTeamSeasonByKey(ctx, teamID, seasonID)
	if err == nil {
		return ts, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up team season: %w", err)
	}

	ts = &football.TeamSeason{TeamID: teamID, SeasonID: seasonID}
	if err := s.store.CreateTeamSeason(ctx, ts); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create team season: %w", err)
	}
	return ts, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
