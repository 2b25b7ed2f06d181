package stats

import (
	"testing"

	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(standings []PlayerStanding) []string {
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.Player.ID
	}
	return out
}

func keys(standings []PairStanding) []string {
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.Key
	}
	return out
}

func TestIndividualRankings_MatchlessPlayersLast(t *testing.T) {
	players := []club.Player{player("e"), player("a"), player("b"), player("f"), player("c")}
	// "x" is not registered, so only a, b and c have played.
	matches := []club.Match{
		withSets(newMatch("m1", "a", "b", "c", "x"), [2]int{6, 4}, [2]int{6, 3}),
	}

	engine := NewEngine(club.ScoringSets, PlayerSetKey{})
	standings := engine.IndividualRankings(players, matches)

	require.Len(t, standings, 5)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(standings[:2]))
	assert.Equal(t, "c", standings[2].Player.ID)
	assert.Equal(t, []string{"e", "f"}, ids(standings[3:]), "matchless players keep registration order")
	for _, s := range standings[3:] {
		assert.Equal(t, 0.0, s.WinRate)
		assert.Equal(t, 0, s.Matches)
	}
}

func TestSortPlayers_SetsMode(t *testing.T) {
	standings := []PlayerStanding{
		{Player: player("low"), GameWinRate: 40, SetWinRate: 90, Differential: 10},
		{Player: player("diff"), GameWinRate: 60, SetWinRate: 50, Differential: 2},
		{Player: player("sets"), GameWinRate: 60, SetWinRate: 70, Differential: -1},
		{Player: player("top"), GameWinRate: 60, SetWinRate: 50, Differential: 5},
	}
	SortPlayers(club.ScoringSets, standings)
	assert.Equal(t, []string{"sets", "top", "diff", "low"}, ids(standings))
}

func TestSortPlayers_PointsMode(t *testing.T) {
	standings := []PlayerStanding{
		{Player: player("b"), WinRate: 50, GameWinRate: 90, Differential: 3},
		{Player: player("a"), WinRate: 75, GameWinRate: 10, Differential: -8},
		{Player: player("c"), WinRate: 50, GameWinRate: 10, Differential: 9},
	}
	SortPlayers(club.ScoringPoints, standings)
	assert.Equal(t, []string{"a", "c", "b"}, ids(standings))
}

func TestSortPlayers_Stable(t *testing.T) {
	standings := []PlayerStanding{
		{Player: player("first")},
		{Player: player("second")},
		{Player: player("third")},
	}
	SortPlayers(club.ScoringSets, standings)
	assert.Equal(t, []string{"first", "second", "third"}, ids(standings))
}

func TestSortPairs_EpsilonPrefersMoreGamesPlayed(t *testing.T) {
	standings := []PairStanding{
		{Key: "few", GameWinRate: 55.005, TotalGamesPlayed: 20, GameDifference: 2},
		{Key: "many", GameWinRate: 55.0, TotalGamesPlayed: 40, GameDifference: 4},
		{Key: "best", GameWinRate: 70.0, TotalGamesPlayed: 10, GameDifference: 4},
	}
	SortPairs(club.ScoringSets, standings)
	assert.Equal(t, []string{"best", "many", "few"}, keys(standings))
}

func TestSortPairs_GameDifferenceBreaksFullTie(t *testing.T) {
	standings := []PairStanding{
		{Key: "minus", GameWinRate: 50, TotalGamesPlayed: 24, GameDifference: -2},
		{Key: "plus", GameWinRate: 50, TotalGamesPlayed: 24, GameDifference: 2},
	}
	SortPairs(club.ScoringSets, standings)
	assert.Equal(t, []string{"plus", "minus"}, keys(standings))
}

func TestSortPairs_OutsideEpsilonUsesRate(t *testing.T) {
	standings := []PairStanding{
		{Key: "busy", GameWinRate: 50.0, TotalGamesPlayed: 100},
		{Key: "sharp", GameWinRate: 50.5, TotalGamesPlayed: 10},
	}
	SortPairs(club.ScoringSets, standings)
	assert.Equal(t, []string{"sharp", "busy"}, keys(standings))
}

func TestSortPairs_PointsMode(t *testing.T) {
	standings := []PairStanding{
		{Key: "x", WinRate: 50, GameDifference: 1, TotalGamesPlayed: 80},
		{Key: "y", WinRate: 50, GameDifference: 6},
		{Key: "z", WinRate: 100, GameDifference: -3},
	}
	SortPairs(club.ScoringPoints, standings)
	assert.Equal(t, []string{"z", "y", "x"}, keys(standings))
}

func TestEngine_Compute(t *testing.T) {
	players := []club.Player{player("a"), player("b"), player("c"), player("d")}
	matches := []club.Match{
		withPairs(withSets(newMatch("m1", "a", "b", "c", "d"), [2]int{6, 4}, [2]int{3, 6}, [2]int{10, 8}), "p1", "p2"),
	}
	matches[0].Team1.Name = ""

	engine := NewEngine(club.ScoringSets, ResolverFor(club.TeamModePair))
	assert.Equal(t, club.ScoringSets, engine.Scoring())

	rankings := engine.Compute(players, matches)
	require.Len(t, rankings.Individual, 4)
	require.Len(t, rankings.Pairs, 2)

	assert.Equal(t, "p1", rankings.Pairs[0].Key)
	assert.Equal(t, "A & B", rankings.Pairs[0].Name, "unnamed pairs are labelled by their players")
	assert.Equal(t, "Pair p2", rankings.Pairs[1].Name)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(rankings.Individual[:2]))
}

func TestEngine_ComputeEmpty(t *testing.T) {
	rankings := NewEngine(club.ScoringPoints, nil).Compute(nil, nil)
	assert.Empty(t, rankings.Individual)
	assert.NotNil(t, rankings.Pairs)
	assert.Empty(t, rankings.Pairs)
}
