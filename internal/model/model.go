package model

import "time"

type TeamCode string

const EmptyTeamCode TeamCode = ""

type PlayerID string

type TeamStatus string

const (
	StatusWaiting   TeamStatus = "waiting"
	StatusCountdown TeamStatus = "countdown"
	StatusActive    TeamStatus = "active"
	StatusFinished  TeamStatus = "finished"
)

// Result is a single player's submitted outcome for one match.
// Score is the ranking metric: wpm * accuracy / 100.
type Result struct {
	WPM       float64
	Accuracy  float64
	TimeTaken float64
	Score     float64
}

type Team struct {
	Code      TeamCode
	AdminID   PlayerID
	Players   []PlayerID
	Status    TeamStatus
	Paragraph string
	Countdown int
	Results   map[PlayerID]Result
	CreatedAt time.Time

	// Bumped on every mutation; stale teams get swept by TTL cleanup.
	LastActivity time.Time
}

// Clone returns a deep copy safe to hand out of the registry.
func (t Team) Clone() Team {
	c := t
	c.Players = make([]PlayerID, len(t.Players))
	copy(c.Players, t.Players)
	c.Results = make(map[PlayerID]Result, len(t.Results))
	for id, r := range t.Results {
		c.Results[id] = r
	}
	return c
}

func (t Team) HasPlayer(id PlayerID) bool {
	for _, p := range t.Players {
		if p == id {
			return true
		}
	}
	return false
}

// MatchOutcome is produced once both players have submitted.
// Draw is set when both scores are exactly equal; Winner/Loser are
// empty in that case.
type MatchOutcome struct {
	Winner      PlayerID
	Loser       PlayerID
	WinnerScore float64
	LoserScore  float64
	Draw        bool
	Results     map[PlayerID]Result
}

// MatchRecord is what gets pushed to the match history store.
type MatchRecord struct {
	TeamCode   TeamCode  `json:"team_code"`
	Winner     PlayerID  `json:"winner,omitempty"`
	Loser      PlayerID  `json:"loser,omitempty"`
	Draw       bool      `json:"draw"`
	TopScore   float64   `json:"top_score"`
	FinishedAt time.Time `json:"finished_at"`
}

// Standing is a leaderboard row: total wins for one player.
type Standing struct {
	PlayerID PlayerID `json:"player_id"`
	Wins     int      `json:"wins"`
}

// AttemptStats is the single-player scoring output.
// Float fields are rounded to 2 decimals for reporting.
type AttemptStats struct {
	WPM          float64
	Accuracy     float64
	Errors       int
	TimeTaken    float64
	TotalChars   int
	CorrectChars int
}
