package matchmaking

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// generator draws teams with a uniform shuffle-then-split.
type generator struct {
	rng Shuffler
}

type globalRand struct{}

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// NewGenerator creates a new pair generator. A nil rng uses the global source.
func NewGenerator(rng Shuffler) PairGenerator {
	if rng == nil {
		rng = globalRand{}
	}
	return &generator{rng: rng}
}

// GeneratePairs implements PairGenerator. The input slice is left untouched.
func (g *generator) GeneratePairs(players []Player) (TeamAssignments, bool) {
	if len(players) != 2*TeamSize {
		log.Debug("Cannot generate pairs", "players", len(players), "required", 2*TeamSize)
		return TeamAssignments{}, false
	}

	shuffled := make([]Player, len(players))
	copy(shuffled, players)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	teams := TeamAssignments{
		Team1: shuffled[:TeamSize:TeamSize],
		Team2: shuffled[TeamSize:],
	}
	log.Debug("Generated pairs", "team1", teams.Team1, "team2", teams.Team2)
	return teams, true
}
