package football

import "time"

type Period string

const (
	PeriodFirstHalf  Period = "1T"
	PeriodSecondHalf Period = "2T"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodFirstHalf, PeriodSecondHalf:
		return Period(s), true
	}
	return "", false
}

type GoalType string

const (
	GoalOpenPlay GoalType = "open_play"
	GoalPenalty  GoalType = "penalty"
	GoalFreeKick GoalType = "free_kick"
	GoalOwnGoal  GoalType = "own_goal"
)

func ParseGoalType(s string) (GoalType, bool) {
	switch GoalType(s) {
	case GoalOpenPlay, GoalPenalty, GoalFreeKick, GoalOwnGoal:
		return GoalType(s), true
	}
	return "", false
}

type CardType string

const (
	CardYellow       CardType = "yellow"
	CardRed          CardType = "red"
	CardSecondYellow CardType = "second_yellow"
)

func ParseCardType(s string) (CardType, bool) {
	switch CardType(s) {
	case CardYellow, CardRed, CardSecondYellow:
		return CardType(s), true
	}
	return "", false
}

// Match owns its goals and cards; deleting a match deletes them. Team names
// and scores are denormalized, recomputed from the goals at save time.
type Match struct {
	ID       int64     `db:"id" json:"id"`
	SeasonID int64     `db:"season_id" json:"season_id"`
	Matchday int       `db:"matchday" json:"matchday"`
	Kickoff  time.Time `db:"kickoff" json:"kickoff"`

	HomeTeamID int64 `db:"home_team_id" json:"home_team_id"`
	AwayTeamID int64 `db:"away_team_id" json:"away_team_id"`

	HomeTeamName string `db:"home_team_name" json:"home_team_name"`
	AwayTeamName string `db:"away_team_name" json:"away_team_name"`
	HomeScore    int    `db:"home_score" json:"home_score"`
	AwayScore    int    `db:"away_score" json:"away_score"`

	Referee *string `db:"referee" json:"referee,omitempty"`
	Extras  Extras  `db:"extras" json:"extras,omitempty"`
}

// Goal.TeamID is the crediting team: for an own goal that is the opposing
// side, never the scorer's own team.
type Goal struct {
	ID      int64 `db:"id" json:"id"`
	MatchID int64 `db:"match_id" json:"match_id"`
	TeamID  int64 `db:"team_id" json:"team_id"`

	ScorerPlayerID *int64 `db:"scorer_player_id" json:"scorer_player_id,omitempty"`
	AssistPlayerID *int64 `db:"assist_player_id" json:"assist_player_id,omitempty"`

	Minute int      `db:"minute" json:"minute"`
	Period Period   `db:"period" json:"period"`
	Type   GoalType `db:"goal_type" json:"goal_type"`

	Extras Extras `db:"extras" json:"extras,omitempty"`
}

type Card struct {
	ID      int64 `db:"id" json:"id"`
	MatchID int64 `db:"match_id" json:"match_id"`
	TeamID  int64 `db:"team_id" json:"team_id"`

	PlayerID *int64 `db:"player_id" json:"player_id,omitempty"`

	Minute int      `db:"minute" json:"minute"`
	Period Period   `db:"period" json:"period"`
	Type   CardType `db:"card_type" json:"card_type"`

	Extras Extras `db:"extras" json:"extras,omitempty"`
}

// GoalEntry is one scoring event as entered: the team of the player who
// scored or committed the own goal, plus the goal type.
type GoalEntry struct {
	PlayerTeamID int64
	Type         GoalType
}

// AttributeGoal returns the team credited with the goal. An own goal goes to
// the opposing match participant; anything else goes to the player's team.
func AttributeGoal(playerTeamID, homeID, awayID int64, goalType GoalType) int64 {
	if goalType != GoalOwnGoal {
		return playerTeamID
	}
	switch playerTeamID {
	case homeID:
		return awayID
	case awayID:
		return homeID
	}
	// Not a participant; ComputeScore discards it either way.
	return playerTeamID
}

// ComputeScore folds the entries into the final (home, away) tally. An entry
// whose credited team is neither participant counts for neither side; the
// save workflow rejects such entries before they reach the database.
func ComputeScore(entries []GoalEntry, homeID, awayID int64) (home, away int) {
	for _, e := range entries {
		switch AttributeGoal(e.PlayerTeamID, homeID, awayID, e.Type) {
		case homeID:
			home++
		case awayID:
			away++
		}
	}
	return home, away
}
