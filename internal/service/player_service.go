package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AndreaRuggieri/retbet/internal/football"
	"github.com/AndreaRuggieri/retbet/internal/store"
	"github.com/AndreaRuggieri/retbet/internal/utils"
	"github.com/jmoiron/sqlx"
)

type PlayerService struct {
	db      *sqlx.DB
	store   *store.PlayerStore
	refs    *ReferenceService
	nowFunc func() time.Time
}

func NewPlayerService(db *sqlx.DB, store *store.PlayerStore, refs *ReferenceService) *PlayerService {
	return &PlayerService{db: db, store: store, refs: refs, nowFunc: time.Now}
}

type PlayerInput struct {
	FirstName string
	LastName  string
	FullName  string

	BirthDate *time.Time

	// Existing country pick; zero means none.
	CountryID int64

	// Manual country entry; when both are set they win over CountryID and may
	// create a new country row.
	CountryName string
	CountryCode string

	MacroRole    string
	MicroRoles   []string
	JerseyNumber int

	CurrentTeamSeasonID *int64

	Extras football.Extras
}

// Upsert creates or updates a player. The identity key is (first name, last
// name, birth date, current team-season): a match overwrites the mutable
// attributes in place, anything else inserts a new row. The same person on
// two rosters is two rows on purpose.
func (s *PlayerService) Upsert(ctx context.Context, in PlayerInput) (*football.Player, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" || in.BirthDate == nil {
		return nil, ErrPlayerIdentityRequired
	}
	birthDate := truncateToDay(*in.BirthDate)

	var macroRole *football.MacroRole
	if in.MacroRole != "" {
		role, ok := football.ParseMacroRole(in.MacroRole)
		if !ok {
			return nil, ErrInvalidRole
		}
		macroRole = &role
	}
	for _, r := range in.MicroRoles {
		if !football.ValidMicroRole(r) {
			return nil, ErrInvalidRole
		}
	}

	countryID, err := s.resolveCountryID(ctx, in)
	if err != nil {
		return nil, err
	}

	ageYears := football.ComputeAge(&birthDate, s.nowFunc())

	existing, err := s.store.GetPlayerByIdentity(ctx, firstName, lastName, birthDate, in.CurrentTeamSeasonID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}

	if existing != nil {
		existing.FullName = utils.StringOrNil(in.FullName)
		existing.CountryID = countryID
		existing.AgeYears = ageYears
		existing.MacroRole = macroRole
		existing.MicroRoles = in.MicroRoles
		existing.JerseyNumber = utils.IntOrNil(in.JerseyNumber)
		existing.Extras = in.Extras
		if err := s.store.UpdatePlayer(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}
		return existing, nil
	}

	player := &football.Player{
		FirstName:           firstName,
		LastName:            lastName,
		FullName:            utils.StringOrNil(in.FullName),
		CountryID:           countryID,
		BirthDate:           &birthDate,
		AgeYears:            ageYears,
		MacroRole:           macroRole,
		MicroRoles:          in.MicroRoles,
		JerseyNumber:        utils.IntOrNil(in.JerseyNumber),
		CurrentTeamSeasonID: in.CurrentTeamSeasonID,
		Extras:              in.Extras,
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *PlayerService) resolveCountryID(ctx context.Context, in PlayerInput) (*int64, error) {
	if in.CountryName != "" && in.CountryCode != "" {
		country, err := s.refs.ResolveCountry(ctx, in.CountryName, in.CountryCode)
		if err != nil {
			return nil, err
		}
		if country != nil {
			return &country.ID, nil
		}
	}
	if in.CountryID != 0 {
		id := in.CountryID
		return &id, nil
	}
	return nil, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (*football.Player, error) {
	player, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *PlayerService) List(ctx context.Context, filter store.PlayerFilter) ([]football.Player, error) {
	return s.store.ListPlayers(ctx, filter)
}

func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetPlayer(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.store.DeletePlayer(ctx, id)
}

// truncateToDay keeps identity comparisons on birth dates stable regardless
// of the time-of-day or zone the caller supplied.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
