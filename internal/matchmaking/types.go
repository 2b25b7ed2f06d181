package matchmaking

import "github.com/mauv0809/padel-stats/internal/club"

// TeamSize is the number of players on each side of a padel match.
const TeamSize = 2

// TeamAssignments represents the two teams drawn for a match
type TeamAssignments struct {
	Team1 []Player `json:"team1"`
	Team2 []Player `json:"team2"`
}

// Player represents a player in team assignments
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FromClub converts registered club players into assignment players.
func FromClub(players []club.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = Player{ID: p.ID, Name: p.Name}
	}
	return out
}
