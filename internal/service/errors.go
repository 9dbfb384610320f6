package service

import "errors"

// Shared sentinel errors, mapped onto HTTP statuses by the API layer.
var (
	ErrNotFound = errors.New("requested record not found")

	// Validation failures: reported to the caller, no write performed.
	ErrNameRequired           = errors.New("name is required")
	ErrCountryRequired        = errors.New("a country must be selected or entered for the competition")
	ErrDivisionInvalid        = errors.New("division must be a positive tier")
	ErrPlayerIdentityRequired = errors.New("first name, last name and birth date are required")
	ErrInvalidRole            = errors.New("unknown macro or micro role")
	ErrTeamSelection          = errors.New("season and two distinct teams must be selected")
	ErrMatchdayInvalid        = errors.New("matchday must be positive")
	ErrInvalidEvent           = errors.New("goal or card has an invalid minute, period or type")

	// The crediting or carded team must be one of the two match participants.
	ErrUnknownEventTeam = errors.New("event team is not one of the match participants")

	// Natural-key conflicts outside the country recovery path surface as-is
	// for the caller to retry.
	ErrConflict = errors.New("record with the same natural key already exists")
)
