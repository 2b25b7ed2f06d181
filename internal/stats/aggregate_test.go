package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id string) club.Player {
	return club.Player{ID: id, Name: strings.ToUpper(id)}
}

// newMatch builds an ad-hoc match a+b vs c+d with no score.
func newMatch(id, a, b, c, d string) club.Match {
	return club.Match{
		ID:    id,
		Date:  time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Team1: club.Team{Players: [2]club.Player{player(a), player(b)}},
		Team2: club.Team{Players: [2]club.Player{player(c), player(d)}},
	}
}

// withSets records the given games as sets and derives the sets-won counts.
func withSets(m club.Match, games ...[2]int) club.Match {
	m.Sets = nil
	m.SetsTeam1, m.SetsTeam2 = 0, 0
	for i, g := range games {
		set := club.Set{Index: i + 1, Team1Games: g[0], Team2Games: g[1]}
		m.Sets = append(m.Sets, set)
		if SetWinner(set) == Team1 {
			m.SetsTeam1++
		} else {
			m.SetsTeam2++
		}
	}
	return m
}

func withPairs(m club.Match, pair1, pair2 string) club.Match {
	m.Team1.PairID, m.Team1.Name = pair1, "Pair "+pair1
	m.Team2.PairID, m.Team2.Name = pair2, "Pair "+pair2
	return m
}

func byPlayer(standings []PlayerStanding) map[string]PlayerStanding {
	out := make(map[string]PlayerStanding, len(standings))
	for _, s := range standings {
		out[s.Player.ID] = s
	}
	return out
}

func byKey(standings []PairStanding) map[string]PairStanding {
	out := make(map[string]PairStanding, len(standings))
	for _, s := range standings {
		out[s.Key] = s
	}
	return out
}

func TestAggregatePlayers_SetsScenario(t *testing.T) {
	players := []club.Player{player("a"), player("b"), player("c"), player("d")}
	match := withSets(newMatch("m1", "a", "b", "c", "d"), [2]int{6, 4}, [2]int{3, 6}, [2]int{10, 8})
	require.Equal(t, 2, match.SetsTeam1)
	require.Equal(t, 1, match.SetsTeam2)

	stats := byPlayer(AggregatePlayers(club.ScoringSets, players, []club.Match{match}))

	a := stats["a"]
	assert.Equal(t, 1, a.Matches)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 2, a.SetsWon)
	assert.Equal(t, 1, a.SetsLost)
	assert.Equal(t, 19, a.GamesWon)
	assert.Equal(t, 18, a.GamesLost)
	assert.InDelta(t, 100.0, a.WinRate, 0.001)
	assert.InDelta(t, 66.667, a.SetWinRate, 0.001)
	assert.InDelta(t, 19.0/37.0*100, a.GameWinRate, 0.001)
	assert.Equal(t, 1, a.Differential)

	d := stats["d"]
	assert.Equal(t, 0, d.Wins)
	assert.Equal(t, 1, d.Losses)
	assert.Equal(t, 1, d.SetsWon)
	assert.Equal(t, 2, d.SetsLost)
	assert.Equal(t, -1, d.Differential)
	assert.InDelta(t, 0.0, d.WinRate, 0.001)
}

func TestAggregatePlayers_SetCountsWithoutSetRecords(t *testing.T) {
	match := newMatch("m1", "a", "b", "c", "d")
	match.SetsTeam1, match.SetsTeam2 = 1, 2

	stats := byPlayer(AggregatePlayers(club.ScoringSets, []club.Player{player("a"), player("c")}, []club.Match{match}))
	assert.Equal(t, 1, stats["a"].SetsWon)
	assert.Equal(t, 2, stats["a"].SetsLost)
	assert.Equal(t, 0, stats["a"].GamesWon)
	assert.Equal(t, 1, stats["c"].Wins)
	assert.InDelta(t, 0.0, stats["c"].GameWinRate, 0.001, "no games recorded means a zero rate")
}

func TestAggregatePlayers_ZeroMatches(t *testing.T) {
	stats := AggregatePlayers(club.ScoringSets, []club.Player{player("lonely")}, nil)
	require.Len(t, stats, 1)

	s := stats[0]
	assert.Equal(t, 0, s.Matches)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, 0.0, s.SetWinRate)
	assert.Equal(t, 0.0, s.GameWinRate)
	assert.Equal(t, 0, s.Differential)
}

func TestAggregatePlayers_PointsMode(t *testing.T) {
	m1 := newMatch("m1", "a", "b", "c", "d")
	m1.Score, m1.PointsTeam1, m1.PointsTeam2 = "6-4 6-2", 21, 12
	m2 := newMatch("m2", "a", "c", "b", "d")
	m2.PointsTeam1, m2.PointsTeam2 = 10, 18

	stats := byPlayer(AggregatePlayers(club.ScoringPoints, []club.Player{player("a"), player("b"), player("c"), player("d")}, []club.Match{m1, m2}))

	a := stats["a"]
	assert.Equal(t, 2, a.Matches)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 31, a.GamesWon)
	assert.Equal(t, 30, a.GamesLost)
	assert.Equal(t, 1, a.Differential)
	assert.InDelta(t, 50.0, a.WinRate, 0.001)

	b := stats["b"]
	assert.Equal(t, 2, b.Wins)
	assert.Equal(t, 0, b.Losses)
	assert.Equal(t, 39-22, b.Differential)
}

func TestAggregatePlayers_IgnoresUnregisteredPlayers(t *testing.T) {
	match := withSets(newMatch("m1", "a", "ghost", "c", "d"), [2]int{6, 0}, [2]int{6, 0})
	stats := AggregatePlayers(club.ScoringSets, []club.Player{player("a")}, []club.Match{match})
	require.Len(t, stats, 1)
	assert.Equal(t, "a", stats[0].Player.ID)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	players := []club.Player{player("a"), player("b"), player("c"), player("d"), player("e")}
	matches := []club.Match{
		withSets(newMatch("m1", "a", "b", "c", "d"), [2]int{6, 4}, [2]int{6, 3}),
		withSets(newMatch("m2", "c", "d", "b", "a"), [2]int{6, 4}, [2]int{2, 6}, [2]int{10, 7}),
		withSets(newMatch("m3", "a", "e", "c", "b"), [2]int{7, 6}, [2]int{4, 6}, [2]int{6, 7}),
		withSets(newMatch("m4", "d", "e", "a", "c"), [2]int{6, 1}, [2]int{6, 1}),
	}
	reversed := make([]club.Match, len(matches))
	for i, m := range matches {
		reversed[len(matches)-1-i] = m
	}
	rotated := append(append([]club.Match{}, matches[2:]...), matches[:2]...)

	for _, resolver := range []TeamKeyResolver{PairKey{}, PlayerSetKey{}} {
		want := byKey(AggregatePairs(club.ScoringSets, resolver, matches))
		assert.Equal(t, want, byKey(AggregatePairs(club.ScoringSets, resolver, reversed)))
		assert.Equal(t, want, byKey(AggregatePairs(club.ScoringSets, resolver, rotated)))
	}

	want := byPlayer(AggregatePlayers(club.ScoringSets, players, matches))
	assert.Equal(t, want, byPlayer(AggregatePlayers(club.ScoringSets, players, reversed)))
	assert.Equal(t, want, byPlayer(AggregatePlayers(club.ScoringSets, players, rotated)))
}

func TestAggregatePairs_SymmetricBuckets(t *testing.T) {
	t.Run("ad-hoc teams aggregate by sorted player ids", func(t *testing.T) {
		matches := []club.Match{
			withSets(newMatch("m1", "b", "a", "c", "d"), [2]int{6, 2}, [2]int{6, 2}),
			withSets(newMatch("m2", "d", "c", "a", "b"), [2]int{6, 2}, [2]int{6, 2}),
		}
		standings := AggregatePairs(club.ScoringSets, PlayerSetKey{}, matches)
		require.Len(t, standings, 2)

		ab := byKey(standings)["a-b"]
		assert.Equal(t, 2, ab.Matches)
		assert.Equal(t, 1, ab.Wins)
		assert.Equal(t, 1, ab.Losses)
		assert.Equal(t, 16, ab.TotalGamesWon)
		assert.Equal(t, 32, ab.TotalGamesPlayed)
		assert.InDelta(t, 50.0, ab.GameWinRate, 0.001)
		assert.Equal(t, [2]string{"A", "B"}, ab.PlayerNames)
		assert.Equal(t, "A & B", ab.Name)
	})

	t.Run("persisted pairs aggregate by pair id", func(t *testing.T) {
		matches := []club.Match{
			withPairs(withSets(newMatch("m1", "a", "b", "c", "d"), [2]int{6, 4}, [2]int{6, 4}), "p1", "p2"),
			withPairs(withSets(newMatch("m2", "c", "d", "a", "b"), [2]int{6, 4}, [2]int{6, 4}), "p2", "p1"),
			withPairs(withSets(newMatch("m3", "a", "b", "c", "d"), [2]int{6, 0}, [2]int{6, 0}), "p1", "p2"),
		}
		standings := byKey(AggregatePairs(club.ScoringSets, PairKey{}, matches))
		require.Len(t, standings, 2)

		p1 := standings["p1"]
		assert.Equal(t, 3, p1.Matches)
		assert.Equal(t, 2, p1.Wins)
		assert.Equal(t, "Pair p1", p1.Name)
		assert.Equal(t, 3, standings["p2"].Matches)
		assert.Equal(t, p1.GameDifference, -standings["p2"].GameDifference)
	})
}

func TestResolverFor(t *testing.T) {
	team := club.Team{PairID: "p9", Players: [2]club.Player{player("z"), player("a")}}
	assert.Equal(t, "p9", ResolverFor(club.TeamModePair).TeamKey(team))
	assert.Equal(t, "a-z", ResolverFor(club.TeamModeAdhoc).TeamKey(team))

	team.PairID = ""
	assert.Equal(t, "a-z", PairKey{}.TeamKey(team), "pair mode falls back to player ids for ad-hoc teams")
}

func TestPlayerSetKey_DoesNotReorderTeam(t *testing.T) {
	team := club.Team{Players: [2]club.Player{player("z"), player("a")}}
	assert.Equal(t, "a-z", PlayerSetKey{}.TeamKey(team))
	assert.Equal(t, [2]string{"z", "a"}, team.PlayerIDs())
}
