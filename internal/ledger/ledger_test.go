package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

func player(id string) club.Player {
	return club.Player{ID: id, Name: strings.ToUpper(id)}
}

func match(id string, seq int64, date time.Time, price float64, a, b, c, d string, setsTeam1, setsTeam2 int) club.Match {
	return club.Match{
		ID:        id,
		Seq:       seq,
		Date:      date,
		Team1:     club.Team{Players: [2]club.Player{player(a), player(b)}},
		Team2:     club.Team{Players: [2]club.Player{player(c), player(d)}},
		SetsTeam1: setsTeam1,
		SetsTeam2: setsTeam2,
		PriceEur:  price,
	}
}

func byID(balances []PlayerBalance) map[string]PlayerBalance {
	out := make(map[string]PlayerBalance, len(balances))
	for _, b := range balances {
		out[b.PlayerID] = b
	}
	return out
}

func everyone() []club.Player {
	return []club.Player{player("a"), player("b"), player("c"), player("d")}
}

func TestCompute_TenEuroMatch(t *testing.T) {
	m := match("m1", 1, day1, 10, "a", "b", "c", "d", 2, 1)
	m.Sets = []club.Set{
		{Index: 1, Team1Games: 6, Team2Games: 4},
		{Index: 2, Team1Games: 3, Team2Games: 6},
		{Index: 3, Team1Games: 10, Team2Games: 8},
	}

	balances := byID(Compute(club.ScoringSets, everyone(), []club.Match{m}))

	for _, id := range []string{"a", "b"} {
		assert.Equal(t, 5.0, balances[id].NetBalance, id)
		assert.Equal(t, 5.0, balances[id].TotalEarned, id)
		assert.Equal(t, 0.0, balances[id].TotalLost, id)
	}
	for _, id := range []string{"c", "d"} {
		assert.Equal(t, -5.0, balances[id].NetBalance, id)
		assert.Equal(t, 5.0, balances[id].TotalLost, id)
	}

	require.Len(t, balances["c"].MatchHistory, 1)
	entry := balances["c"].MatchHistory[0]
	assert.Equal(t, "m1", entry.MatchID)
	assert.Equal(t, day1, entry.Date)
	assert.Equal(t, -5.0, entry.Amount)
	assert.Equal(t, -5.0, entry.CumulativeBalance)
}

func TestCompute_ConservesMoneyPerMatch(t *testing.T) {
	matches := []club.Match{
		match("m1", 1, day1, 12, "a", "b", "c", "d", 2, 0),
		match("m2", 2, day1.Add(24*time.Hour), 7.5, "a", "c", "b", "d", 0, 2),
		match("m3", 3, day1.Add(48*time.Hour), 3, "d", "b", "a", "c", 1, 2),
	}

	balances := Compute(club.ScoringSets, everyone(), matches)

	perMatch := make(map[string]float64)
	var net float64
	for _, b := range balances {
		for _, e := range b.MatchHistory {
			perMatch[e.MatchID] += e.Amount
		}
		net += b.NetBalance
		assert.InDelta(t, b.TotalEarned-b.TotalLost, b.NetBalance, 1e-9)
	}
	require.Len(t, perMatch, 3)
	for id, sum := range perMatch {
		assert.InDelta(t, 0, sum, 1e-9, id)
	}
	assert.InDelta(t, 0, net, 1e-9)
}

func TestCompute_SkipsUnstakedMatches(t *testing.T) {
	matches := []club.Match{
		match("free", 1, day1, 0, "a", "b", "c", "d", 2, 0),
		match("negative", 2, day1, -4, "a", "b", "c", "d", 2, 0),
	}
	for _, b := range Compute(club.ScoringSets, everyone(), matches) {
		assert.Empty(t, b.MatchHistory)
		assert.Equal(t, 0.0, b.NetBalance)
	}
}

func TestCompute_EmptyLedgerListsEveryPlayer(t *testing.T) {
	balances := Compute(club.ScoringSets, everyone(), nil)
	require.Len(t, balances, 4)
	for _, b := range balances {
		assert.NotNil(t, b.MatchHistory)
		assert.Empty(t, b.MatchHistory)
		assert.Equal(t, 0.0, b.NetBalance)
	}
	assert.Equal(t, "A", balances[0].PlayerName)
}

func TestCompute_ReplaysInDateThenSequenceOrder(t *testing.T) {
	later := day1.Add(24 * time.Hour)
	// Stored newest first, as the store returns them.
	matches := []club.Match{
		match("m3", 3, later, 4, "a", "b", "c", "d", 0, 2),
		match("m2", 2, day1, 2, "a", "b", "c", "d", 2, 0),
		match("m1", 1, day1, 6, "a", "b", "c", "d", 2, 0),
	}

	a := byID(Compute(club.ScoringSets, everyone(), matches))["a"]
	require.Len(t, a.MatchHistory, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{
		a.MatchHistory[0].MatchID, a.MatchHistory[1].MatchID, a.MatchHistory[2].MatchID,
	})
	assert.Equal(t, []float64{3, 4, 2}, []float64{
		a.MatchHistory[0].CumulativeBalance, a.MatchHistory[1].CumulativeBalance, a.MatchHistory[2].CumulativeBalance,
	})
	assert.Equal(t, 4.0, a.TotalEarned)
	assert.Equal(t, 2.0, a.TotalLost)
}

func TestCompute_SortedByNetBalance(t *testing.T) {
	matches := []club.Match{
		match("m1", 1, day1, 10, "c", "d", "a", "b", 2, 0),
		match("m2", 2, day1, 4, "a", "c", "b", "d", 2, 1),
	}
	balances := Compute(club.ScoringSets, everyone(), matches)

	got := make([]string, len(balances))
	for i, b := range balances {
		got[i] = b.PlayerID
	}
	// c: +5 +2, d: +5 -2, a: -5 +2, b: -5 -2
	assert.Equal(t, []string{"c", "d", "a", "b"}, got)
}

func TestCompute_PointsModeWinner(t *testing.T) {
	m := match("m1", 1, day1, 8, "a", "b", "c", "d", 2, 0)
	m.PointsTeam1, m.PointsTeam2 = 11, 21

	balances := byID(Compute(club.ScoringPoints, everyone(), []club.Match{m}))
	assert.Equal(t, -4.0, balances["a"].NetBalance)
	assert.Equal(t, 4.0, balances["d"].NetBalance)
}

func TestCompute_UnregisteredPlayersAreSkipped(t *testing.T) {
	m := match("m1", 1, day1, 10, "a", "ghost", "c", "d", 2, 0)
	balances := Compute(club.ScoringSets, []club.Player{player("a"), player("c")}, []club.Match{m})
	require.Len(t, balances, 2)
	assert.Equal(t, 5.0, byID(balances)["a"].NetBalance)
	assert.Equal(t, -5.0, byID(balances)["c"].NetBalance)
}
