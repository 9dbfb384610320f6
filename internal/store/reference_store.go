package store

import (
	"context"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/jmoiron/sqlx"
)

// ReferenceStore persists the reference-data entities: countries,
// competitions, seasons, teams and team-season links.
type ReferenceStore struct {
	db *sqlx.DB
}

const (
	getCountryByIDQuery   = "SELECT * FROM countries WHERE id = ?"
	getCountryByCodeQuery = "SELECT * FROM countries WHERE code = ?"
	getCountryByNameQuery = "SELECT * FROM countries WHERE name = ?"
	listCountriesQuery    = "SELECT * FROM countries ORDER BY name"
	createCountryQuery    = "INSERT INTO countries (name, code) VALUES (:name, :code)"

	getTeamByIDQuery   = "SELECT * FROM teams WHERE id = ?"
	getTeamByNameQuery = "SELECT * FROM teams WHERE name = ?"
	listTeamsQuery     = "SELECT * FROM teams ORDER BY name"
	createTeamQuery    = "INSERT INTO teams (name, crest_url, extras) VALUES (:name, :crest_url, :extras)"

	getCompetitionByIDQuery   = "SELECT * FROM competitions WHERE id = ?"
	getCompetitionByNameQuery = "SELECT * FROM competitions WHERE name = ?"
	listCompetitionsQuery     = "SELECT * FROM competitions ORDER BY name"
	createCompetitionQuery    = `
		INSERT INTO competitions (name, country_id, division)
		VALUES (:name, :country_id, :division)
	`
	updateCompetitionQuery = `
		UPDATE competitions SET
		country_id = :country_id,
		division = :division
		WHERE id = :id
	`

	getSeasonByIDQuery = "SELECT * FROM seasons WHERE id = ?"
	getSeasonQuery     = "SELECT * FROM seasons WHERE competition_id = ? AND name = ?"
	listSeasonsQuery   = "SELECT * FROM seasons WHERE competition_id = ? ORDER BY name"
	createSeasonQuery  = "INSERT INTO seasons (competition_id, name) VALUES (:competition_id, :name)"

	getTeamSeasonByIDQuery = "SELECT * FROM team_seasons WHERE id = ?"
	getTeamSeasonQuery     = "SELECT * FROM team_seasons WHERE team_id = ? AND season_id = ?"
	listTeamSeasonsQuery   = "SELECT * FROM team_seasons WHERE season_id = ?"
	createTeamSeasonQuery  = "INSERT INTO team_seasons (team_id, season_id) VALUES (:team_id, :season_id)"
)

func NewReferenceStore(db *sqlx.DB) *ReferenceStore {
	return &ReferenceStore{db: db}
}

func (s *ReferenceStore) GetCountry(ctx context.Context, id int64) (*football.Country, error) {
	var c football.Country
	if err := s.db.GetContext(ctx, &c, getCountryByIDQuery, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ReferenceStore) GetCountryByCode(ctx context.Context, code string) (*football.Country, error) {
	var c football.Country
	if err := s.db.GetContext(ctx, &c, getCountryByCodeQuery, code); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ReferenceStore) GetCountryByName(ctx context.Context, name string) (*football.Country, error) {
	var c football.Country
	if err := s.db.GetContext(ctx, &c, getCountryByNameQuery, name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ReferenceStore) ListCountries(ctx context.Context) ([]football.Country, error) {
	var countries []football.Country
	err := s.db.SelectContext(ctx, &countries, listCountriesQuery)
	return countries, err
}

func (s *ReferenceStore) CreateCountry(ctx context.Context, country *football.Country) error {
	res, err := s.db.NamedExecContext(ctx, createCountryQuery, country)
	if err != nil {
		return err
	}
	country.ID, err = res.LastInsertId()
	return err
}

func (s *ReferenceStore) GetTeam(ctx context.Context, id int64) (*football.Team, error) {
	var t football.Team
	if err := s.db.GetContext(ctx, &t, getTeamByIDQuery, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *ReferenceStore) GetTeamByName(ctx context.Context, name string) (*football.Team, error) {
	var t football.Team
	if err := s.db.GetContext(ctx, &t, getTeamByNameQuery, name); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *ReferenceStore) ListTeams(ctx context.Context) ([]football.Team, error) {
	var teams []football.Team
	err := s.db.SelectContext(ctx, &teams, listTeamsQuery)
	return teams, err
}

func (s *ReferenceStore) CreateTeam(ctx context.Context, team *football.Team) error {
	res, err := s.db.NamedExecContext(ctx, createTeamQuery, team)
	if err != nil {
		return err
	}
	team.ID, err = res.LastInsertId()
	return err
}

func (s *ReferenceStore) GetCompetition(ctx context.Context, id int64) (*football.Competition, error) {
	var c football.Competition
	if err := s.db.GetContext(ctx, &c, getCompetitionByIDQuery, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ReferenceStore) GetCompetitionByName(ctx context.Context, name string) (*football.Competition, error) {
	var c football.Competition
	if err := s.db.GetContext(ctx, &c, getCompetitionByNameQuery, name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ReferenceStore) ListCompetitions(ctx context.Context) ([]football.Competition, error) {
	var comps []football.Competition
	err := s.db.SelectContext(ctx, &comps, listCompetitionsQuery)
	return comps, err
}

func (s *ReferenceStore) CreateCompetition(ctx context.Context, comp *football.Competition) error {
	res, err := s.db.NamedExecContext(ctx, createCompetitionQuery, comp)
	if err != nil {
		return err
	}
	comp.ID, err = res.LastInsertId()
	return err
}

func (s *ReferenceStore) UpdateCompetition(ctx context.Context, comp *football.Competition) error {
	_, err := s.db.NamedExecContext(ctx, updateCompetitionQuery, comp)
	return err
}

func (s *ReferenceStore) GetSeason(ctx context.Context, id int64) (*football.Season, error) {
	var season football.Season
	if err := s.db.GetContext(ctx, &season, getSeasonByIDQuery, id); err != nil {
		return nil, err
	}
	return &season, nil
}

func (s *ReferenceStore) GetSeasonByName(ctx context.Context, competitionID int64, name string) (*football.Season, error) {
	var season football.Season
	if err := s.db.GetContext(ctx, &season, getSeasonQuery, competitionID, name); err != nil {
		return nil, err
	}
	return &season, nil
}

func (s *ReferenceStore) ListSeasons(ctx context.Context, competitionID int64) ([]football.Season, error) {
	var seasons []football.Season
	err := s.db.SelectContext(ctx, &seasons, listSeasonsQuery, competitionID)
	return seasons, err
}

func (s *ReferenceStore) CreateSeason(ctx context.Context, season *football.Season) error {
	res, err := s.db.NamedExecContext(ctx, createSeasonQuery, season)
	if err != nil {
		return err
	}
	season.ID, err = res.LastInsertId()
	return err
}

func (s *ReferenceStore) GetTeamSeason(ctx context.Context, id int64) (*football.TeamSeason, error) {
	var ts football.TeamSeason
	if err := s.db.GetContext(ctx, &ts, getTeamSeasonByIDQuery, id); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (s *ReferenceStore) GetTeamSeasonByKey(ctx context.Context, teamID, seasonID int64) (*football.TeamSeason, error) {
	var ts football.TeamSeason
	if err := s.db.GetContext(ctx, &ts, getTeamSeasonQuery, teamID, seasonID); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (s *ReferenceStore) ListTeamSeasons(ctx context.Context, seasonID int64) ([]football.TeamSeason, error) {
	var links []football.TeamSeason
	err := s.db.SelectContext(ctx, &links, listTeamSeasonsQuery, seasonID)
	return links, err
}

func (s *ReferenceStore) CreateTeamSeason(ctx context.Context, ts *football.TeamSeason) error {
	res, err := s.db.NamedExecContext(ctx, createTeamSeasonQuery, ts)
	if err != nil {
		return err
	}
	ts.ID, err = res.LastInsertId()
	return err
}
