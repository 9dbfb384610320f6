package football

import "time"

type MacroRole string

const (
	RoleGoalkeeper MacroRole = "GK"
	RoleDefender   MacroRole = "DF"
	RoleMidfielder MacroRole = "MF"
	RoleStriker    MacroRole = "ST"
)

func ParseMacroRole(s string) (MacroRole, bool) {
	switch MacroRole(s) {
	case RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleStriker:
		return MacroRole(s), true
	}
	return "", false
}

// MicroRoles is the vocabulary of specific positional labels. A player may
// carry several, kept in entry order.
var MicroRoles = []string{
	"GK", "LB", "RB", "CB", "DM", "CM", "AM", "LM", "RM", "CF", "SS", "LW", "LF", "RW", "RF",
}

func ValidMicroRole(s string) bool {
	for _, r := range MicroRoles {
		if r == s {
			return true
		}
	}
	return false
}

// Player is scoped to a roster context: the same person in two different
// team-seasons is two distinct rows. Identity for upserts is
// (first name, last name, birth date, current team-season).
type Player struct {
	ID        int64   `db:"id" json:"id"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	FullName  *string `db:"full_name" json:"full_name,omitempty"`

	CountryID *int64     `db:"country_id" json:"country_id,omitempty"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	AgeYears  *int       `db:"age_years" json:"age_years,omitempty"`

	MacroRole  *MacroRole `db:"macro_role" json:"macro_role,omitempty"`
	MicroRoles RoleList   `db:"micro_roles" json:"micro_roles,omitempty"`

	JerseyNumber        *int   `db:"jersey_number" json:"jersey_number,omitempty"`
	CurrentTeamSeasonID *int64 `db:"current_team_season_id" json:"current_team_season_id,omitempty"`

	Extras Extras `db:"extras" json:"extras,omitempty"`
}

// ComputeAge returns the exact calendar age at today, or nil when the birth
// date is unknown. The day before the birthday still counts the previous year.
func ComputeAge(birth *time.Time, today time.Time) *int {
	if birth == nil {
		return nil
	}
	years := today.Year() - birth.Year()
	if int(today.Month()) < int(birth.Month()) ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return &years
}
