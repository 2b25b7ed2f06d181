package stats

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
)

// RateEpsilon is the absolute difference, in percentage points, below which two
// game win rates are treated as equal when ranking pairs.
const RateEpsilon = 0.01

// SortPlayers orders individual standings, best first. Points scoring ranks by win
// rate then point difference. Sets scoring ranks by game win rate, set win rate,
// then game difference. The sort is stable.
func SortPlayers(mode club.ScoringMode, standings []PlayerStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if mode == club.ScoringPoints {
			if a.WinRate != b.WinRate {
				return a.WinRate > b.WinRate
			}
			return a.Differential > b.Differential
		}
		if a.GameWinRate != b.GameWinRate {
			return a.GameWinRate > b.GameWinRate
		}
		if a.SetWinRate != b.SetWinRate {
			return a.SetWinRate > b.SetWinRate
		}
		return a.Differential > b.Differential
	})
}

// SortPairs orders pair standings, best first. Points scoring ranks by win rate then
// point difference. Sets scoring ranks by game win rate (within RateEpsilon), then
// total games played, then game difference. The sort is stable.
func SortPairs(mode club.ScoringMode, standings []PairStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if mode == club.ScoringPoints {
			if a.WinRate != b.WinRate {
				return a.WinRate > b.WinRate
			}
			return a.GameDifference > b.GameDifference
		}
		if math.Abs(a.GameWinRate-b.GameWinRate) > RateEpsilon {
			return a.GameWinRate > b.GameWinRate
		}
		if a.TotalGamesPlayed != b.TotalGamesPlayed {
			return a.TotalGamesPlayed > b.TotalGamesPlayed
		}
		return a.GameDifference > b.GameDifference
	})
}

// Engine computes rankings under a fixed scoring mode and team identity.
// It holds no state between calls; every ranking is recomputed from the matches.
type Engine struct {
	scoring club.ScoringMode
	teams   TeamKeyResolver
}

// NewEngine creates a new ranking Engine.
func NewEngine(scoring club.ScoringMode, teams TeamKeyResolver) *Engine {
	if teams == nil {
		teams = PairKey{}
	}
	return &Engine{scoring: scoring, teams: teams}
}

// Scoring returns the scoring mode the engine ranks under.
func (e *Engine) Scoring() club.ScoringMode {
	return e.scoring
}

// Rankings holds both ranking tables.
type Rankings struct {
	Individual []PlayerStanding `json:"individual"`
	Pairs      []PairStanding   `json:"pairs"`
}

// IndividualRankings aggregates and sorts the per-player standings.
func (e *Engine) IndividualRankings(players []club.Player, matches []club.Match) []PlayerStanding {
	standings := AggregatePlayers(e.scoring, players, matches)
	SortPlayers(e.scoring, standings)
	return standings
}

// PairRankings aggregates and sorts the per-pair standings.
func (e *Engine) PairRankings(matches []club.Match) []PairStanding {
	standings := AggregatePairs(e.scoring, e.teams, matches)
	SortPairs(e.scoring, standings)
	return standings
}

// Compute builds both ranking tables from one snapshot.
func (e *Engine) Compute(players []club.Player, matches []club.Match) Rankings {
	start := time.Now()
	for _, m := range matches {
		if !Decided(e.scoring, m) {
			log.Warn("Match has no decisive result, counting it for the fallback side", "matchID", m.ID, "winner", Winner(e.scoring, m))
		}
	}
	r := Rankings{
		Individual: e.IndividualRankings(players, matches),
		Pairs:      e.PairRankings(matches),
	}
	if r.Pairs == nil {
		r.Pairs = []PairStanding{}
	}
	log.Debug("Computed rankings", "players", len(r.Individual), "pairs", len(r.Pairs), "matches", len(matches), "duration", time.Since(start))
	return r
}
