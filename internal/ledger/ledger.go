package ledger

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// Entry is one stake movement for a player.
type Entry struct {
	MatchID           string    `json:"match_id"`
	Date              time.Time `json:"date"`
	Amount            float64   `json:"amount"`
	CumulativeBalance float64   `json:"cumulative_balance"`
}

// PlayerBalance is a player's money summary and ordered history.
type PlayerBalance struct {
	PlayerID     string  `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	TotalEarned  float64 `json:"total_earned"`
	TotalLost    float64 `json:"total_lost"`
	NetBalance   float64 `json:"net_balance"`
	MatchHistory []Entry `json:"match_history"`
}

func (b *PlayerBalance) credit(m club.Match, amount float64) {
	if amount >= 0 {
		b.TotalEarned += amount
	} else {
		b.TotalLost -= amount
	}
	b.NetBalance += amount
	b.MatchHistory = append(b.MatchHistory, Entry{
		MatchID:           m.ID,
		Date:              m.Date,
		Amount:            amount,
		CumulativeBalance: b.NetBalance,
	})
}

// Compute replays every match with a positive stake in date order and returns one
// balance per registered player, highest net balance first. Matches on the same date
// keep their recording order. Each of the two losers pays half the stake to the
// winner on the other side.
func Compute(mode club.ScoringMode, players []club.Player, matches []club.Match) []PlayerBalance {
	index := make(map[string]int, len(players))
	balances := make([]PlayerBalance, 0, len(players))
	for _, p := range players {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(balances)
		balances = append(balances, PlayerBalance{
			PlayerID:     p.ID,
			PlayerName:   p.Name,
			MatchHistory: []Entry{},
		})
	}

	for _, m := range chronological(matches) {
		share := m.PriceEur / 2
		winner := stats.Winner(mode, m)
		for _, side := range []stats.Side{stats.Team1, stats.Team2} {
			amount := share
			if side != winner {
				amount = -share
			}
			for _, id := range stats.TeamOf(m, side).PlayerIDs() {
				i, ok := index[id]
				if !ok {
					log.Debug("Skipping stake for unregistered player", "matchID", m.ID, "playerID", id)
					continue
				}
				balances[i].credit(m, amount)
			}
		}
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].NetBalance > balances[j].NetBalance
	})
	return balances
}

// chronological returns the staked matches sorted by date, then by recording sequence.
func chronological(matches []club.Match) []club.Match {
	staked := make([]club.Match, 0, len(matches))
	for _, m := range matches {
		if m.PriceEur > 0 {
			staked = append(staked, m)
		}
	}
	sort.SliceStable(staked, func(i, j int) bool {
		if !staked[i].Date.Equal(staked[j].Date) {
			return staked[i].Date.Before(staked[j].Date)
		}
		return staked[i].Seq < staked[j].Seq
	})
	return staked
}
