package ledger

import (
	"sort"
)

const dayLayout = "2006-01-02"

// TimelinePoint is every player's running balance at the end of one day.
type TimelinePoint struct {
	Day      string             `json:"day"`
	Balances map[string]float64 `json:"balances"`
}

// Timeline merges the per-player histories into one series with a point for each
// day on which any staked match was played. A player's value on a day is their
// latest cumulative balance on or before that day, or 0 before their first match.
func Timeline(balances []PlayerBalance) []TimelinePoint {
	daySet := make(map[string]struct{})
	for _, b := range balances {
		for _, e := range b.MatchHistory {
			daySet[e.Date.UTC().Format(dayLayout)] = struct{}{}
		}
	}
	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	points := make([]TimelinePoint, len(days))
	for i, d := range days {
		points[i] = TimelinePoint{Day: d, Balances: make(map[string]float64, len(balances))}
	}

	for _, b := range balances {
		var (
			next    int
			current float64
		)
		for i, d := range days {
			for next < len(b.MatchHistory) && b.MatchHistory[next].Date.UTC().Format(dayLayout) <= d {
				current = b.MatchHistory[next].CumulativeBalance
				next++
			}
			points[i].Balances[b.PlayerID] = current
		}
	}
	return points
}
