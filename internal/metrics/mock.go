package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	mutations        map[string]int
	rankingsComputed int
	rankingDurations []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		mutations:        make(map[string]int),
		rankingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMutation(entity, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations[entity+"/"+action]++
}

func (m *Mock) IncRankingsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingsComputed++
}

func (m *Mock) ObserveRankingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingDurations = append(m.rankingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Mutations returns how often IncMutation was called for the entity and action.
func (m *Mock) Mutations(entity, action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations[entity+"/"+action]
}

// RankingsComputed returns the number of times IncRankingsComputed was called.
func (m *Mock) RankingsComputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankingsComputed
}

// RankingDurations returns every observed ranking duration.
func (m *Mock) RankingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.rankingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
