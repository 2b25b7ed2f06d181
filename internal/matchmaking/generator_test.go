package matchmaking_test

import (
	"math/rand/v2"
	"testing"

	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reverse is a deterministic Shuffler that reverses the order.
type reverse struct{}

func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func fourPlayers() []matchmaking.Player {
	return []matchmaking.Player{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Ben"},
		{ID: "p3", Name: "Carla"},
		{ID: "p4", Name: "Dani"},
	}
}

func TestGeneratePairs_SplitsShuffledPlayers(t *testing.T) {
	players := fourPlayers()
	teams, ok := matchmaking.NewGenerator(reverse{}).GeneratePairs(players)
	require.True(t, ok)

	assert.Equal(t, []matchmaking.Player{{ID: "p4", Name: "Dani"}, {ID: "p3", Name: "Carla"}}, teams.Team1)
	assert.Equal(t, []matchmaking.Player{{ID: "p2", Name: "Ben"}, {ID: "p1", Name: "Ana"}}, teams.Team2)
	assert.Equal(t, fourPlayers(), players, "input must not be reordered")
}

func TestGeneratePairs_Partitions(t *testing.T) {
	gen := matchmaking.NewGenerator(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 50; i++ {
		teams, ok := gen.GeneratePairs(fourPlayers())
		require.True(t, ok)
		require.Len(t, teams.Team1, matchmaking.TeamSize)
		require.Len(t, teams.Team2, matchmaking.TeamSize)
		assert.ElementsMatch(t, fourPlayers(), append(append([]matchmaking.Player{}, teams.Team1...), teams.Team2...))
	}
}

func TestGeneratePairs_ReachesEveryTeaming(t *testing.T) {
	gen := matchmaking.NewGenerator(rand.New(rand.NewPCG(7, 7)))
	partners := make(map[string]bool)
	for i := 0; i < 200; i++ {
		teams, ok := gen.GeneratePairs(fourPlayers())
		require.True(t, ok)
		for _, team := range [][]matchmaking.Player{teams.Team1, teams.Team2} {
			if team[0].ID == "p1" {
				partners[team[1].ID] = true
			}
			if team[1].ID == "p1" {
				partners[team[0].ID] = true
			}
		}
	}
	assert.Len(t, partners, 3, "p1 should be paired with every other player at least once")
}

func TestGeneratePairs_RequiresFourPlayers(t *testing.T) {
	gen := matchmaking.NewGenerator(nil)
	for _, n := range []int{0, 3, 5} {
		players := make([]matchmaking.Player, n)
		teams, ok := gen.GeneratePairs(players)
		assert.False(t, ok, "n=%d", n)
		assert.Empty(t, teams.Team1)
		assert.Empty(t, teams.Team2)
	}
}

func TestFromClub(t *testing.T) {
	players := matchmaking.FromClub([]club.Player{{ID: "x", Name: "Xavi"}})
	assert.Equal(t, []matchmaking.Player{{ID: "x", Name: "Xavi"}}, players)
}
