package notifier

import (
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly recorded matches
	SendMatchResult(match club.Match, dryRun bool) error
	// For announcing the current standings
	SendStandings(rankings stats.Rankings, dryRun bool) error
	// For freshly drawn teams
	SendGeneratedPairs(teams matchmaking.TeamAssignments, dryRun bool) error

	// For formatting responses without posting them
	FormatStandingsResponse(rankings stats.Rankings) (any, error)
}
