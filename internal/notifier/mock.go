package notifier

import (
	"sync"

	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/mauv0809/padel-stats/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls []struct {
		Match  club.Match
		DryRun bool
	}
	SendStandingsCalls []struct {
		Rankings stats.Rankings
		DryRun   bool
	}
	SendGeneratedPairsCalls []matchmaking.TeamAssignments

	// Spies
	SendMatchResultFunc         func(match club.Match, dryRun bool) error
	SendStandingsFunc           func(rankings stats.Rankings, dryRun bool) error
	FormatStandingsResponseFunc func(rankings stats.Rankings) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendStandingsCalls = nil
	m.SendGeneratedPairsCalls = nil
}

func (m *Mock) SendMatchResult(match club.Match, dryRun bool) error {
	m.mu.Lock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Match  club.Match
		DryRun bool
	}{match, dryRun})
	fn := m.SendMatchResultFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(match, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(rankings stats.Rankings, dryRun bool) error {
	m.mu.Lock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		Rankings stats.Rankings
		DryRun   bool
	}{rankings, dryRun})
	fn := m.SendStandingsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(rankings, dryRun)
	}
	return nil
}

func (m *Mock) SendGeneratedPairs(teams matchmaking.TeamAssignments, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGeneratedPairsCalls = append(m.SendGeneratedPairsCalls, teams)
	return nil
}

func (m *Mock) FormatStandingsResponse(rankings stats.Rankings) (any, error) {
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(rankings)
	}
	return nil, nil
}

// MatchResultCount returns the number of SendMatchResult calls.
func (m *Mock) MatchResultCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendMatchResultCalls)
}

// StandingsCount returns the number of SendStandings calls.
func (m *Mock) StandingsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendStandingsCalls)
}
