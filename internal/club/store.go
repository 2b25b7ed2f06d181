package club

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// New creates a new ClubStore. The scoring mode decides which result fields a new
// match must carry.
func New(db *sql.DB, scoring ScoringMode) ClubStore {
	return &store{
		db:      db,
		scoring: scoring,
	}
}

func (s *store) AddPlayer(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := Player{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	_, err := s.db.Exec("INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)", p.ID, p.Name, p.CreatedAt.Unix())
	if err != nil {
		log.Error("Failed to add player", "error", err, "name", name)
		return Player{}, fmt.Errorf("failed to add player: %w", err)
	}
	log.Info("Added player", "playerID", p.ID, "name", p.Name)
	return p, nil
}

// DeletePlayer removes a player. Players still referenced by a pair or a match are
// rejected rather than cascaded.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var refs int
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM pairs WHERE player1_id = ?1 OR player2_id = ?1) +
			(SELECT COUNT(*) FROM matches WHERE team1_player1_id = ?1 OR team1_player2_id = ?1
				OR team2_player1_id = ?1 OR team2_player2_id = ?1)
	`, playerID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check player references: %w", err)
	}
	if refs > 0 {
		return ErrPlayerInUse
	}

	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		log.Error("Failed to delete player", "error", err, "playerID", playerID)
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	log.Info("Deleted player", "playerID", playerID)
	return nil
}

// GetAllPlayers returns every registered player ordered by name.
func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, created_at FROM players ORDER BY name, created_at")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayers returns the players with the given ids. Unknown ids are skipped.
func (s *store) GetPlayers(playerIDs []string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID, err := loadPlayers(s.db, playerIDs)
	if err != nil {
		return nil, err
	}
	players := make([]Player, 0, len(byID))
	for _, id := range playerIDs {
		if p, ok := byID[id]; ok {
			players = append(players, p)
			delete(byID, id)
		}
	}
	return players, nil
}

func (s *store) AddPair(name, player1ID, player2ID string) (Pair, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Pair{}, ErrEmptyName
	}
	if player1ID == "" || player2ID == "" || player1ID == player2ID {
		return Pair{}, fmt.Errorf("%w: a pair needs two distinct players", ErrInvalidPair)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := loadPlayers(s.db, []string{player1ID, player2ID})
	if err != nil {
		return Pair{}, err
	}
	if len(players) != 2 {
		return Pair{}, fmt.Errorf("%w: unknown player", ErrInvalidPair)
	}

	pair := Pair{
		ID:        uuid.NewString(),
		Name:      name,
		Player1:   players[player1ID],
		Player2:   players[player2ID],
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.Exec("INSERT INTO pairs (id, name, player1_id, player2_id, created_at) VALUES (?, ?, ?, ?, ?)",
		pair.ID, pair.Name, player1ID, player2ID, pair.CreatedAt.Unix())
	if err != nil {
		log.Error("Failed to add pair", "error", err, "name", name)
		return Pair{}, fmt.Errorf("failed to add pair: %w", err)
	}
	log.Info("Added pair", "pairID", pair.ID, "name", pair.Name)
	return pair, nil
}

func (s *store) DeletePair(pairID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var refs int
	err := s.db.QueryRow("SELECT COUNT(*) FROM matches WHERE team1_pair_id = ?1 OR team2_pair_id = ?1", pairID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check pair references: %w", err)
	}
	if refs > 0 {
		return ErrPairInUse
	}

	res, err := s.db.Exec("DELETE FROM pairs WHERE id = ?", pairID)
	if err != nil {
		log.Error("Failed to delete pair", "error", err, "pairID", pairID)
		return fmt.Errorf("failed to delete pair: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	log.Info("Deleted pair", "pairID", pairID)
	return nil
}

// GetAllPairs returns every pair with its players, ordered by name.
func (s *store) GetAllPairs() ([]Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID, err := loadPairs(s.db)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(byID))
	for _, p := range byID {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Name == pairs[j].Name {
			return pairs[i].ID < pairs[j].ID
		}
		return pairs[i].Name < pairs[j].Name
	})
	return pairs, nil
}

// CreateMatch validates the input and inserts the match together with its sets in a
// single transaction.
func (s *store) CreateMatch(in MatchInput) (Match, error) {
	if err := validateScores(in); err != nil {
		return Match{}, err
	}
	sets, err := normalizeSets(in)
	if err != nil {
		return Match{}, err
	}
	if err := validateResult(s.scoring, in, sets); err != nil {
		return Match{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return Match{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	team1, team2, err := resolveTeams(tx, in)
	if err != nil {
		return Match{}, err
	}
	if err := validateTeams(team1, team2); err != nil {
		return Match{}, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	match := Match{
		ID:          uuid.NewString(),
		Date:        in.Date.UTC().Truncate(time.Second),
		Team1:       team1,
		Team2:       team2,
		Score:       in.Score,
		PointsTeam1: in.PointsTeam1,
		PointsTeam2: in.PointsTeam2,
		SetsTeam1:   in.SetsTeam1,
		SetsTeam2:   in.SetsTeam2,
		SuperTeam1:  in.SuperTeam1,
		SuperTeam2:  in.SuperTeam2,
		PriceEur:    in.PriceEur,
		CreatedAt:   now,
	}
	if in.Date.IsZero() {
		match.Date = now
	}

	if err := tx.QueryRow("SELECT COALESCE(MAX(seq), 0) + 1 FROM matches").Scan(&match.Seq); err != nil {
		return Match{}, fmt.Errorf("failed to allocate match sequence: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO matches (id, seq, date, team1_pair_id, team2_pair_id,
			team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
			score, points_team1, points_team2, sets_team1, sets_team2, super_team1, super_team2,
			price_eur, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		match.ID, match.Seq, match.Date.Unix(), nullString(team1.PairID), nullString(team2.PairID),
		team1.Players[0].ID, team1.Players[1].ID, team2.Players[0].ID, team2.Players[1].ID,
		match.Score, match.PointsTeam1, match.PointsTeam2, match.SetsTeam1, match.SetsTeam2,
		nullInt(match.SuperTeam1), nullInt(match.SuperTeam2), match.PriceEur, now.Unix(),
	)
	if err != nil {
		log.Error("Failed to insert match", "error", err)
		return Match{}, fmt.Errorf("failed to insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sets (id, match_id, idx, team1_games, team2_games, tiebreak_team1, tiebreak_team2)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Match{}, fmt.Errorf("failed to prepare set insert: %w", err)
	}
	defer stmt.Close()

	match.Sets = make([]Set, 0, len(sets))
	for _, si := range sets {
		set := Set{
			ID:            uuid.NewString(),
			Index:         si.Index,
			Team1Games:    si.Team1Games,
			Team2Games:    si.Team2Games,
			TiebreakTeam1: si.TiebreakTeam1,
			TiebreakTeam2: si.TiebreakTeam2,
		}
		_, err := stmt.Exec(set.ID, match.ID, set.Index, set.Team1Games, set.Team2Games, nullInt(set.TiebreakTeam1), nullInt(set.TiebreakTeam2))
		if err != nil {
			log.Error("Failed to insert set", "error", err, "matchID", match.ID, "index", set.Index)
			return Match{}, fmt.Errorf("failed to insert set %d: %w", set.Index, err)
		}
		match.Sets = append(match.Sets, set)
	}

	if err := tx.Commit(); err != nil {
		return Match{}, fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Created match", "matchID", match.ID, "team1", team1.DisplayName(), "team2", team2.DisplayName(), "sets", len(match.Sets))
	return match, nil
}

// DeleteMatch removes a match and its sets. Sets are deleted first.
func (s *store) DeleteMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sets WHERE match_id = ?", matchID); err != nil {
		log.Error("Failed to delete sets", "error", err, "matchID", matchID)
		return fmt.Errorf("failed to delete sets: %w", err)
	}
	res, err := tx.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to delete match", "error", err, "matchID", matchID)
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match deletion: %w", err)
	}
	log.Info("Deleted match", "matchID", matchID)
	return nil
}

// GetAllMatches returns every match with its teams, players and ordered sets, newest
// first.
func (s *store) GetAllMatches() ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players, err := loadPlayers(s.db, nil)
	if err != nil {
		return nil, err
	}
	pairs, err := loadPairs(s.db)
	if err != nil {
		return nil, err
	}
	sets, err := loadSets(s.db)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, seq, date, team1_pair_id, team2_pair_id,
			team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
			score, points_team1, points_team2, sets_team1, sets_team2, super_team1, super_team2,
			price_eur, created_at
		FROM matches
		ORDER BY date DESC, seq DESC
	`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var (
			m                      Match
			date, createdAt        int64
			pair1, pair2           sql.NullString
			t1p1, t1p2, t2p1, t2p2 string
			super1, super2         sql.NullInt64
		)
		err := rows.Scan(&m.ID, &m.Seq, &date, &pair1, &pair2, &t1p1, &t1p2, &t2p1, &t2p2,
			&m.Score, &m.PointsTeam1, &m.PointsTeam2, &m.SetsTeam1, &m.SetsTeam2, &super1, &super2,
			&m.PriceEur, &createdAt)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			return nil, err
		}
		m.Date = time.Unix(date, 0).UTC()
		m.CreatedAt = time.Unix(createdAt, 0).UTC()
		m.SuperTeam1 = intPtr(super1)
		m.SuperTeam2 = intPtr(super2)
		m.Team1 = buildTeam(pairs, players, pair1.String, t1p1, t1p2)
		m.Team2 = buildTeam(pairs, players, pair2.String, t2p1, t2p2)
		m.Sets = sets[m.ID]
		if m.Sets == nil {
			m.Sets = []Set{}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// resolveTeams turns the input's pair or player references into teams.
func resolveTeams(q querier, in MatchInput) (Team, Team, error) {
	if in.UsesPairs() {
		if in.Team1PairID == "" || in.Team2PairID == "" {
			return Team{}, Team{}, fmt.Errorf("%w: both teams must reference a pair", ErrInvalidMatch)
		}
		if in.Team1PairID == in.Team2PairID {
			return Team{}, Team{}, fmt.Errorf("%w: a pair cannot play itself", ErrInvalidMatch)
		}
		pairs, err := loadPairs(q)
		if err != nil {
			return Team{}, Team{}, err
		}
		p1, ok1 := pairs[in.Team1PairID]
		p2, ok2 := pairs[in.Team2PairID]
		if !ok1 || !ok2 {
			return Team{}, Team{}, fmt.Errorf("%w: unknown pair", ErrInvalidMatch)
		}
		return pairTeam(p1), pairTeam(p2), nil
	}

	if len(in.Team1PlayerIDs) != 2 || len(in.Team2PlayerIDs) != 2 {
		return Team{}, Team{}, fmt.Errorf("%w: each team needs exactly two players", ErrInvalidMatch)
	}
	ids := append(append([]string{}, in.Team1PlayerIDs...), in.Team2PlayerIDs...)
	players, err := loadPlayers(q, ids)
	if err != nil {
		return Team{}, Team{}, err
	}
	for _, id := range ids {
		if _, ok := players[id]; !ok {
			return Team{}, Team{}, fmt.Errorf("%w: unknown player %s", ErrInvalidMatch, id)
		}
	}
	team1 := Team{Players: [2]Player{players[ids[0]], players[ids[1]]}}
	team2 := Team{Players: [2]Player{players[ids[2]], players[ids[3]]}}
	return team1, team2, nil
}

func pairTeam(p Pair) Team {
	return Team{PairID: p.ID, Name: p.Name, Players: [2]Player{p.Player1, p.Player2}}
}

func buildTeam(pairs map[string]Pair, players map[string]Player, pairID, player1ID, player2ID string) Team {
	team := Team{Players: [2]Player{lookupPlayer(players, player1ID), lookupPlayer(players, player2ID)}}
	if p, ok := pairs[pairID]; ok {
		team.PairID = p.ID
		team.Name = p.Name
	}
	return team
}

func lookupPlayer(players map[string]Player, id string) Player {
	if p, ok := players[id]; ok {
		return p
	}
	return Player{ID: id}
}

// loadPlayers returns the players keyed by id. A nil ids slice loads all players.
func loadPlayers(q querier, ids []string) (map[string]Player, error) {
	query := "SELECT id, name, created_at FROM players"
	var args []any
	if ids != nil {
		if len(ids) == 0 {
			return map[string]Player{}, nil
		}
		query += " WHERE id IN (?" + strings.Repeat(", ?", len(ids)-1) + ")"
		args = toAnySlice(ids)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := make(map[string]Player)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players[p.ID] = p
	}
	return players, rows.Err()
}

func loadPairs(q querier) (map[string]Pair, error) {
	rows, err := q.Query(`
		SELECT pr.id, pr.name, pr.created_at,
			p1.id, p1.name, p1.created_at,
			p2.id, p2.name, p2.created_at
		FROM pairs pr
		JOIN players p1 ON p1.id = pr.player1_id
		JOIN players p2 ON p2.id = pr.player2_id
	`)
	if err != nil {
		log.Error("Failed to query pairs", "error", err)
		return nil, err
	}
	defer rows.Close()

	pairs := make(map[string]Pair)
	for rows.Next() {
		var (
			p               Pair
			created, c1, c2 int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &created,
			&p.Player1.ID, &p.Player1.Name, &c1,
			&p.Player2.ID, &p.Player2.Name, &c2); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(created, 0).UTC()
		p.Player1.CreatedAt = time.Unix(c1, 0).UTC()
		p.Player2.CreatedAt = time.Unix(c2, 0).UTC()
		pairs[p.ID] = p
	}
	return pairs, rows.Err()
}

// loadSets returns every set grouped by match id, ordered by index.
func loadSets(q querier) (map[string][]Set, error) {
	rows, err := q.Query(`
		SELECT id, match_id, idx, team1_games, team2_games, tiebreak_team1, tiebreak_team2
		FROM sets
		ORDER BY match_id, idx
	`)
	if err != nil {
		log.Error("Failed to query sets", "error", err)
		return nil, err
	}
	defer rows.Close()

	sets := make(map[string][]Set)
	for rows.Next() {
		var (
			set      Set
			matchID  string
			tb1, tb2 sql.NullInt64
		)
		if err := rows.Scan(&set.ID, &matchID, &set.Index, &set.Team1Games, &set.Team2Games, &tb1, &tb2); err != nil {
			return nil, err
		}
		set.TiebreakTeam1 = intPtr(tb1)
		set.TiebreakTeam2 = intPtr(tb2)
		sets[matchID] = append(sets[matchID], set)
	}
	return sets, rows.Err()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (Player, error) {
	var (
		p       Player
		created int64
	)
	if err := scanner.Scan(&p.ID, &p.Name, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, err
	}
	p.CreatedAt = time.Unix(created, 0).UTC()
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
