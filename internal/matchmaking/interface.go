package matchmaking

// PairGenerator splits four selected players into two teams of two.
type PairGenerator interface {
	// GeneratePairs shuffles the players and splits them 2+2. It reports false and
	// assigns nobody unless exactly four players are given.
	GeneratePairs(players []Player) (TeamAssignments, bool)
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}
