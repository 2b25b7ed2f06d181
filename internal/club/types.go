package club

import (
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidPair  = errors.New("invalid pair")
	ErrInvalidMatch = errors.New("invalid match")
	ErrPlayerInUse  = errors.New("player is referenced by a pair or match")
	ErrPairInUse    = errors.New("pair is referenced by a match")
	ErrEmptyName    = errors.New("name must not be empty")
)

// ScoringMode selects how a match result is recorded.
type ScoringMode string

const (
	// ScoringSets records sets won per team, optional super tiebreak and per-set games.
	ScoringSets ScoringMode = "sets"
	// ScoringPoints records a freeform score plus a points total per team.
	ScoringPoints ScoringMode = "points"
)

// TeamMode selects how a team is identified across matches.
type TeamMode string

const (
	// TeamModePair identifies teams by a persisted pair id.
	TeamModePair TeamMode = "pair"
	// TeamModeAdhoc identifies teams by the two player ids recorded on the match.
	TeamModeAdhoc TeamMode = "adhoc"
)

// store handles all database operations for the club.
type store struct {
	db      *sql.DB
	scoring ScoringMode
	mu      sync.RWMutex
}

// Player is a registered club member.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Pair is a persisted team of two distinct players.
type Pair struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Player1   Player    `json:"player1"`
	Player2   Player    `json:"player2"`
	CreatedAt time.Time `json:"created_at"`
}

// Team is one side of a match. PairID is empty when the team is ad-hoc.
type Team struct {
	PairID  string    `json:"pair_id,omitempty"`
	Name    string    `json:"name"`
	Players [2]Player `json:"players"`
}

// Has reports whether the player is on this team.
func (t Team) Has(playerID string) bool {
	return t.Players[0].ID == playerID || t.Players[1].ID == playerID
}

// PlayerIDs returns the ids of both players in match order.
func (t Team) PlayerIDs() [2]string {
	return [2]string{t.Players[0].ID, t.Players[1].ID}
}

// DisplayName returns the team name, or the players joined with "&" when unnamed.
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return strings.Join([]string{t.Players[0].Name, t.Players[1].Name}, " & ")
}

// Set holds the games of one set. Tiebreak points are only present when the set
// went to a tiebreak.
type Set struct {
	ID            string `json:"id"`
	Index         int    `json:"index"`
	Team1Games    int    `json:"team1_games"`
	Team2Games    int    `json:"team2_games"`
	TiebreakTeam1 *int   `json:"tiebreak_team1,omitempty"`
	TiebreakTeam2 *int   `json:"tiebreak_team2,omitempty"`
}

// Match is a fully joined match record.
type Match struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Date        time.Time `json:"date"`
	Team1       Team      `json:"team1"`
	Team2       Team      `json:"team2"`
	Score       string    `json:"score,omitempty"`
	PointsTeam1 int       `json:"points_team1"`
	PointsTeam2 int       `json:"points_team2"`
	SetsTeam1   int       `json:"sets_team1"`
	SetsTeam2   int       `json:"sets_team2"`
	SuperTeam1  *int      `json:"super_team1,omitempty"`
	SuperTeam2  *int      `json:"super_team2,omitempty"`
	Sets        []Set     `json:"sets"`
	PriceEur    float64   `json:"price_eur"`
	CreatedAt   time.Time `json:"created_at"`
}

// SetInput is a set as submitted by a client.
type SetInput struct {
	Index         int  `json:"index"`
	Team1Games    int  `json:"team1_games"`
	Team2Games    int  `json:"team2_games"`
	TiebreakTeam1 *int `json:"tiebreak_team1,omitempty"`
	TiebreakTeam2 *int `json:"tiebreak_team2,omitempty"`
}

// MatchInput describes a match to be created. Teams are given either as pair ids
// or as two player ids per side.
type MatchInput struct {
	Date           time.Time  `json:"date"`
	Team1PairID    string     `json:"team1_pair_id,omitempty"`
	Team2PairID    string     `json:"team2_pair_id,omitempty"`
	Team1PlayerIDs []string   `json:"team1_player_ids,omitempty"`
	Team2PlayerIDs []string   `json:"team2_player_ids,omitempty"`
	Score          string     `json:"score,omitempty"`
	PointsTeam1    int        `json:"points_team1"`
	PointsTeam2    int        `json:"points_team2"`
	SetsTeam1      int        `json:"sets_team1"`
	SetsTeam2      int        `json:"sets_team2"`
	SuperTeam1     *int       `json:"super_team1,omitempty"`
	SuperTeam2     *int       `json:"super_team2,omitempty"`
	Sets           []SetInput `json:"sets,omitempty"`
	PriceEur       float64    `json:"price_eur"`
}

// UsesPairs reports whether the input references persisted pairs.
func (in MatchInput) UsesPairs() bool {
	return in.Team1PairID != "" || in.Team2PairID != ""
}
