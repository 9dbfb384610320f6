package football

type Competition struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CountryID int64  `db:"country_id" json:"country_id"`

	// Tier within the country, 1 is the top flight.
	Division int `db:"division" json:"division"`
}

type Season struct {
	ID            int64  `db:"id" json:"id"`
	CompetitionID int64  `db:"competition_id" json:"competition_id"`
	Name          string `db:"name" json:"name"`
}
