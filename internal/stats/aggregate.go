package stats

import (
	"sort"

	"github.com/mauv0809/padel-stats/internal/club"
)

// Tally is the raw count accumulated for a player or a pair. In points scoring the
// games columns hold the points totals.
type Tally struct {
	Matches   int `json:"matches"`
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	SetsWon   int `json:"sets_won"`
	SetsLost  int `json:"sets_lost"`
	GamesWon  int `json:"games_won"`
	GamesLost int `json:"games_lost"`
}

// add folds one match into the tally from the point of view of side.
func (t *Tally) add(mode club.ScoringMode, m club.Match, side Side) {
	t.Matches++
	if Winner(mode, m) == side {
		t.Wins++
	} else {
		t.Losses++
	}

	if mode == club.ScoringPoints {
		t.GamesWon += pick(side, m.PointsTeam1, m.PointsTeam2)
		t.GamesLost += pick(side.Other(), m.PointsTeam1, m.PointsTeam2)
		return
	}

	if len(m.Sets) == 0 {
		t.SetsWon += pick(side, m.SetsTeam1, m.SetsTeam2)
		t.SetsLost += pick(side.Other(), m.SetsTeam1, m.SetsTeam2)
		return
	}
	for _, set := range m.Sets {
		if SetWinner(set) == side {
			t.SetsWon++
		} else {
			t.SetsLost++
		}
		t.GamesWon += pick(side, set.Team1Games, set.Team2Games)
		t.GamesLost += pick(side.Other(), set.Team1Games, set.Team2Games)
	}
}

func pick(side Side, team1, team2 int) int {
	if side == Team1 {
		return team1
	}
	return team2
}

// rate returns part/total as a percentage, or 0 when total is 0.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// PlayerStanding is one row of the individual rankings.
type PlayerStanding struct {
	Player club.Player `json:"player"`
	Tally
	WinRate      float64 `json:"win_rate"`
	SetWinRate   float64 `json:"set_win_rate"`
	GameWinRate  float64 `json:"game_win_rate"`
	Differential int     `json:"differential"`
}

func (s *PlayerStanding) derive() {
	s.WinRate = rate(s.Wins, s.Matches)
	s.SetWinRate = rate(s.SetsWon, s.SetsWon+s.SetsLost)
	s.GameWinRate = rate(s.GamesWon, s.GamesWon+s.GamesLost)
	s.Differential = s.GamesWon - s.GamesLost
}

// PairStanding is one row of the pair rankings.
type PairStanding struct {
	Key         string    `json:"pair_id"`
	Name        string    `json:"name"`
	PlayerNames [2]string `json:"player_names"`
	Tally
	WinRate          float64 `json:"win_rate"`
	TotalGamesWon    int     `json:"total_games_won"`
	TotalGamesPlayed int     `json:"total_games_played"`
	GameWinRate      float64 `json:"game_win_rate"`
	GameDifference   int     `json:"game_difference"`
}

func (s *PairStanding) derive() {
	s.WinRate = rate(s.Wins, s.Matches)
	s.TotalGamesWon = s.GamesWon
	s.TotalGamesPlayed = s.GamesWon + s.GamesLost
	s.GameWinRate = rate(s.TotalGamesWon, s.TotalGamesPlayed)
	s.GameDifference = s.GamesWon - s.GamesLost
}

// AggregatePlayers folds the matches into one standing per registered player, in
// the order the players were given. Players without matches get zeroed stats.
func AggregatePlayers(mode club.ScoringMode, players []club.Player, matches []club.Match) []PlayerStanding {
	index := make(map[string]int, len(players))
	standings := make([]PlayerStanding, 0, len(players))
	for _, p := range players {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(standings)
		standings = append(standings, PlayerStanding{Player: p})
	}

	for _, m := range matches {
		for _, side := range []Side{Team1, Team2} {
			for _, id := range TeamOf(m, side).PlayerIDs() {
				if i, ok := index[id]; ok {
					standings[i].add(mode, m, side)
				}
			}
		}
	}

	for i := range standings {
		standings[i].derive()
	}
	return standings
}

// AggregatePairs folds the matches into one standing per distinct team, keyed by
// the resolver. Pairs are only discovered by playing, so every standing has at
// least one match. Standings are returned in order of first appearance.
func AggregatePairs(mode club.ScoringMode, resolver TeamKeyResolver, matches []club.Match) []PairStanding {
	index := make(map[string]int)
	var standings []PairStanding

	for _, m := range matches {
		for _, side := range []Side{Team1, Team2} {
			team := TeamOf(m, side)
			key := resolver.TeamKey(team)
			i, ok := index[key]
			if !ok {
				i = len(standings)
				index[key] = i
				standings = append(standings, newPairStanding(key, team))
			}
			standings[i].add(mode, m, side)
		}
	}

	for i := range standings {
		standings[i].derive()
	}
	return standings
}

func newPairStanding(key string, team club.Team) PairStanding {
	names := []string{team.Players[0].Name, team.Players[1].Name}
	sort.Strings(names)
	s := PairStanding{Key: key, PlayerNames: [2]string{names[0], names[1]}}
	if team.PairID != "" {
		s.Name = team.Name
	}
	if s.Name == "" {
		s.Name = names[0] + " & " + names[1]
	}
	return s
}
