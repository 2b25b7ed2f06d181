package club

import (
	"sync"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc     func(name string) (Player, error)
	DeletePlayerFunc  func(playerID string) error
	GetAllPlayersFunc func() ([]Player, error)
	GetPlayersFunc    func(playerIDs []string) ([]Player, error)
	AddPairFunc       func(name, player1ID, player2ID string) (Pair, error)
	DeletePairFunc    func(pairID string) error
	GetAllPairsFunc   func() ([]Pair, error)
	CreateMatchFunc   func(input MatchInput) (Match, error)
	DeleteMatchFunc   func(matchID string) error
	GetAllMatchesFunc func() ([]Match, error)

	// Call records
	AddPlayerCalls    []string
	DeletePlayerCalls []string
	GetPlayersCalls   [][]string
	AddPairCalls      []struct {
		Name      string
		Player1ID string
		Player2ID string
	}
	DeletePairCalls  []string
	CreateMatchCalls []MatchInput
	DeleteMatchCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.DeletePlayerCalls = nil
	m.GetPlayersCalls = nil
	m.AddPairCalls = nil
	m.DeletePairCalls = nil
	m.CreateMatchCalls = nil
	m.DeleteMatchCalls = nil
}

func (m *MockStore) AddPlayer(name string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(name)
	}
	return Player{ID: "player-" + name, Name: name}, nil
}

func (m *MockStore) DeletePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return []Player{}, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return []Player{}, nil
}

func (m *MockStore) AddPair(name, player1ID, player2ID string) (Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPairCalls = append(m.AddPairCalls, struct {
		Name      string
		Player1ID string
		Player2ID string
	}{name, player1ID, player2ID})
	if m.AddPairFunc != nil {
		return m.AddPairFunc(name, player1ID, player2ID)
	}
	return Pair{ID: "pair-" + name, Name: name, Player1: Player{ID: player1ID}, Player2: Player{ID: player2ID}}, nil
}

func (m *MockStore) DeletePair(pairID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePairCalls = append(m.DeletePairCalls, pairID)
	if m.DeletePairFunc != nil {
		return m.DeletePairFunc(pairID)
	}
	return nil
}

func (m *MockStore) GetAllPairs() ([]Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPairsFunc != nil {
		return m.GetAllPairsFunc()
	}
	return []Pair{}, nil
}

func (m *MockStore) CreateMatch(input MatchInput) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, input)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(input)
	}
	return Match{ID: "match-1", Date: input.Date, PriceEur: input.PriceEur}, nil
}

func (m *MockStore) DeleteMatch(matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, matchID)
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(matchID)
	}
	return nil
}

func (m *MockStore) GetAllMatches() ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return []Match{}, nil
}
