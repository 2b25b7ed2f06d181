package stats

import "github.com/mauv0809/padel-stats/internal/club"

// Side is one of the two teams of a match.
type Side int

const (
	Team1 Side = iota + 1
	Team2
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Team1 {
		return Team2
	}
	return Team1
}

func (s Side) String() string {
	switch s {
	case Team1:
		return "team1"
	case Team2:
		return "team2"
	}
	return "unknown"
}

// decide compares two scores, falling back to the tiebreak when the scores are
// level and both tiebreak values were recorded. A level score without a tiebreak
// resolves to Team2: the final comparison is score1 > score2, which is false.
func decide(score1, score2 int, tiebreak1, tiebreak2 *int) Side {
	if score1 != score2 {
		if score1 > score2 {
			return Team1
		}
		return Team2
	}
	if tiebreak1 != nil && tiebreak2 != nil {
		if *tiebreak1 > *tiebreak2 {
			return Team1
		}
		return Team2
	}
	if score1 > score2 {
		return Team1
	}
	return Team2
}

// MatchWinner decides a match recorded with sets: more sets wins, then the super
// tiebreak.
func MatchWinner(m club.Match) Side {
	return decide(m.SetsTeam1, m.SetsTeam2, m.SuperTeam1, m.SuperTeam2)
}

// SetWinner decides a single set: more games wins, then the tiebreak.
func SetWinner(s club.Set) Side {
	return decide(s.Team1Games, s.Team2Games, s.TiebreakTeam1, s.TiebreakTeam2)
}

// PointsWinner decides a match recorded with points totals. Level points favour
// Team1; the store refuses to record them.
func PointsWinner(m club.Match) Side {
	if m.PointsTeam2 > m.PointsTeam1 {
		return Team2
	}
	return Team1
}

// Winner decides a match under the given scoring mode.
func Winner(mode club.ScoringMode, m club.Match) Side {
	if mode == club.ScoringPoints {
		return PointsWinner(m)
	}
	return MatchWinner(m)
}

// Decided reports whether the match result was decisive rather than settled by the
// level-score fallback.
func Decided(mode club.ScoringMode, m club.Match) bool {
	if mode == club.ScoringPoints {
		return m.PointsTeam1 != m.PointsTeam2
	}
	if m.SetsTeam1 != m.SetsTeam2 {
		return true
	}
	return m.SuperTeam1 != nil && m.SuperTeam2 != nil && *m.SuperTeam1 != *m.SuperTeam2
}

// TeamOf returns the team on the given side.
func TeamOf(m club.Match, s Side) club.Team {
	if s == Team1 {
		return m.Team1
	}
	return m.Team2
}

// SideOf returns the side the player is on, or false when the player did not play.
func SideOf(m club.Match, playerID string) (Side, bool) {
	switch {
	case m.Team1.Has(playerID):
		return Team1, true
	case m.Team2.Has(playerID):
		return Team2, true
	}
	return 0, false
}
