package football

type Team struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	CrestURL *string `db:"crest_url" json:"crest_url,omitempty"`
	Extras   Extras  `db:"extras" json:"extras,omitempty"`
}

// TeamSeason records a club's participation in one competition-season and
// scopes roster membership.
type TeamSeason struct {
	ID       int64 `db:"id" json:"id"`
	TeamID   int64 `db:"team_id" json:"team_id"`
	SeasonID int64 `db:"season_id" json:"season_id"`
}
