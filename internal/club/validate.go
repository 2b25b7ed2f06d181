package club

import (
	"fmt"
	"sort"
)

// normalizeSets checks the set records against the sets-won counts and returns them
// ordered by index. Sets submitted without an index are numbered in order.
func normalizeSets(in MatchInput) ([]SetInput, error) {
	total := in.SetsTeam1 + in.SetsTeam2
	if len(in.Sets) != total {
		return nil, fmt.Errorf("%w: expected %d sets, got %d", ErrInvalidMatch, total, len(in.Sets))
	}

	sets := make([]SetInput, len(in.Sets))
	copy(sets, in.Sets)

	unindexed := 0
	for _, s := range sets {
		if s.Index == 0 {
			unindexed++
		}
	}
	switch unindexed {
	case len(sets):
		for i := range sets {
			sets[i].Index = i + 1
		}
	case 0:
	default:
		return nil, fmt.Errorf("%w: either all or no sets must carry an index", ErrInvalidMatch)
	}

	sort.SliceStable(sets, func(i, j int) bool { return sets[i].Index < sets[j].Index })
	for i, s := range sets {
		if s.Index != i+1 {
			return nil, fmt.Errorf("%w: set indexes must run 1..%d", ErrInvalidMatch, total)
		}
		if s.Team1Games < 0 || s.Team2Games < 0 {
			return nil, fmt.Errorf("%w: set %d has negative games", ErrInvalidMatch, s.Index)
		}
		if (s.TiebreakTeam1 == nil) != (s.TiebreakTeam2 == nil) {
			return nil, fmt.Errorf("%w: set %d has a one-sided tiebreak", ErrInvalidMatch, s.Index)
		}
	}
	return sets, nil
}

// validateScores checks the match-level score fields.
func validateScores(in MatchInput) error {
	if in.SetsTeam1 < 0 || in.SetsTeam2 < 0 || in.PointsTeam1 < 0 || in.PointsTeam2 < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidMatch)
	}
	if (in.SuperTeam1 == nil) != (in.SuperTeam2 == nil) {
		return fmt.Errorf("%w: super tiebreak must be recorded for both teams", ErrInvalidMatch)
	}
	if in.PriceEur < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidMatch)
	}
	return nil
}

// validateResult checks that the match has a winner under the scoring mode. Every
// recorded set must have a winner and the sets won must agree with the set records.
// In sets mode the set counts decide the match unless they are level, which requires
// a decisive super tiebreak. In points mode the points must not be level.
func validateResult(scoring ScoringMode, in MatchInput, sets []SetInput) error {
	won1, won2 := 0, 0
	for _, s := range sets {
		switch setSide(s) {
		case 1:
			won1++
		case 2:
			won2++
		default:
			return fmt.Errorf("%w: set %d has no winner", ErrInvalidMatch, s.Index)
		}
	}
	if won1 != in.SetsTeam1 || won2 != in.SetsTeam2 {
		return fmt.Errorf("%w: sets won %d-%d do not match the set scores %d-%d",
			ErrInvalidMatch, in.SetsTeam1, in.SetsTeam2, won1, won2)
	}

	if scoring == ScoringPoints {
		if in.PointsTeam1 == in.PointsTeam2 {
			return fmt.Errorf("%w: points are level", ErrInvalidMatch)
		}
		return nil
	}

	hasSuper := in.SuperTeam1 != nil && in.SuperTeam2 != nil
	switch {
	case in.SetsTeam1 == 0 && in.SetsTeam2 == 0:
		return fmt.Errorf("%w: no sets recorded", ErrInvalidMatch)
	case in.SetsTeam1 != in.SetsTeam2 && hasSuper:
		return fmt.Errorf("%w: super tiebreak recorded although sets are %d-%d", ErrInvalidMatch, in.SetsTeam1, in.SetsTeam2)
	case in.SetsTeam1 == in.SetsTeam2 && !hasSuper:
		return fmt.Errorf("%w: sets are level and no super tiebreak was recorded", ErrInvalidMatch)
	case hasSuper && *in.SuperTeam1 == *in.SuperTeam2:
		return fmt.Errorf("%w: super tiebreak is level", ErrInvalidMatch)
	}
	return nil
}

// setSide returns 1 or 2 for the team that won the set, or 0 when the games are
// level and no tiebreak separates them.
func setSide(s SetInput) int {
	a, b := s.Team1Games, s.Team2Games
	if a == b && s.TiebreakTeam1 != nil && s.TiebreakTeam2 != nil {
		a, b = *s.TiebreakTeam1, *s.TiebreakTeam2
	}
	switch {
	case a > b:
		return 1
	case b > a:
		return 2
	}
	return 0
}

// validateTeams checks that both sides have two distinct players and share none.
func validateTeams(team1, team2 Team) error {
	ids := map[string]bool{}
	for _, t := range []Team{team1, team2} {
		for _, id := range t.PlayerIDs() {
			if id == "" {
				return fmt.Errorf("%w: each team needs two players", ErrInvalidMatch)
			}
			if ids[id] {
				return fmt.Errorf("%w: player %s appears twice", ErrInvalidMatch, id)
			}
			ids[id] = true
		}
	}
	return nil
}
