package stats

import (
	"sort"
	"strings"

	"github.com/mauv0809/padel-stats/internal/club"
)

// TeamKeyResolver maps a team to a canonical identity so that the same team always
// aggregates into one bucket, whichever side of the match it played on.
type TeamKeyResolver interface {
	TeamKey(t club.Team) string
}

// PairKey identifies a team by its persisted pair id. Teams recorded without a pair
// fall back to their player ids.
type PairKey struct{}

func (PairKey) TeamKey(t club.Team) string {
	if t.PairID == "" {
		return PlayerSetKey{}.TeamKey(t)
	}
	return t.PairID
}

// PlayerSetKey identifies a team by its two player ids, sorted and joined with "-".
type PlayerSetKey struct{}

func (PlayerSetKey) TeamKey(t club.Team) string {
	ids := t.PlayerIDs()
	sorted := ids[:]
	sort.Strings(sorted)
	return strings.Join(sorted, "-")
}

// ResolverFor returns the resolver for the configured team mode.
func ResolverFor(mode club.TeamMode) TeamKeyResolver {
	if mode == club.TeamModeAdhoc {
		return PlayerSetKey{}
	}
	return PairKey{}
}
