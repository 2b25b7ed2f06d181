package club

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	AddPlayer(name string) (Player, error)
	DeletePlayer(playerID string) error
	GetAllPlayers() ([]Player, error)
	GetPlayers(playerIDs []string) ([]Player, error)

	AddPair(name, player1ID, player2ID string) (Pair, error)
	DeletePair(pairID string) error
	GetAllPairs() ([]Pair, error)

	CreateMatch(input MatchInput) (Match, error)
	DeleteMatch(matchID string) error
	GetAllMatches() ([]Match, error)
}
