package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/database"
)

const numMatches = 200

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	values := map[string]string{"MIGRATIONS_DIR": "./migrations", "SCORING_MODE": string(club.ScoringSets)}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "MIGRATIONS_DIR", "SCORING_MODE"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			values[key] = value
		}
	}
	if values["DB_NAME"] == "" && values["TURSO_PRIMARY_URL"] == "" {
		log.Fatalf("Error: Either DB_NAME or TURSO_PRIMARY_URL must be set.")
	}
	return values
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	scoring, err := config.ParseScoringMode(cfg["SCORING_MODE"])
	if err != nil {
		log.Fatalf("Invalid scoring mode: %s", err)
	}

	startTime := time.Now()
	if err := seed(club.New(db, scoring), numMatches, rand.New(rand.NewPCG(uint64(startTime.UnixNano()), 0))); err != nil {
		log.Fatalf("Seeding failed: %s", err)
	}
	log.Info("Successfully inserted all dummy matches.", "duration", time.Since(startTime))
}

// seed inserts four players, two pairs and n matches dated within the last year.
func seed(store club.ClubStore, n int, rng *rand.Rand) error {
	players := make([]club.Player, 0, 4)
	for _, name := range []string{"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D"} {
		p, err := store.AddPlayer(name)
		if err != nil {
			return fmt.Errorf("insert dummy player %s: %w", name, err)
		}
		players = append(players, p)
	}
	pair1, err := store.AddPair("Seeded Smashers", players[0].ID, players[1].ID)
	if err != nil {
		return fmt.Errorf("insert dummy pair: %w", err)
	}
	pair2, err := store.AddPair("Seeded Lobbers", players[2].ID, players[3].ID)
	if err != nil {
		return fmt.Errorf("insert dummy pair: %w", err)
	}
	log.Info("Inserted dummy players and pairs.")

	log.Info("Preparing to insert dummy matches...", "total", n)
	for i := 0; i < n; i++ {
		in := randomMatch(rng, time.Now().Add(-time.Duration(rng.IntN(365*24))*time.Hour))
		// Alternate between persisted pairs and mixed ad-hoc teams.
		if i%2 == 0 {
			in.Team1PairID, in.Team2PairID = pair1.ID, pair2.ID
		} else {
			in.Team1PlayerIDs = []string{players[0].ID, players[2].ID}
			in.Team2PlayerIDs = []string{players[1].ID, players[3].ID}
		}
		if _, err := store.CreateMatch(in); err != nil {
			return fmt.Errorf("insert dummy match %d: %w", i+1, err)
		}
		if (i+1)%50 == 0 {
			log.Info("Inserted matches", "completed", i+1, "total", n)
		}
	}
	return nil
}

// randomMatch plays out a best-of-three where every set is won 6-x. Points are the
// games won, with a bonus point for the match winner when they come out level.
func randomMatch(rng *rand.Rand, date time.Time) club.MatchInput {
	in := club.MatchInput{
		Date:     date,
		PriceEur: []float64{0, 5, 10}[rng.IntN(3)],
	}
	for in.SetsTeam1 < 2 && in.SetsTeam2 < 2 {
		set := club.SetInput{Index: len(in.Sets) + 1}
		if rng.IntN(2) == 0 {
			set.Team1Games, set.Team2Games = 6, rng.IntN(5)
			in.SetsTeam1++
		} else {
			set.Team1Games, set.Team2Games = rng.IntN(5), 6
			in.SetsTeam2++
		}
		in.Sets = append(in.Sets, set)
		in.PointsTeam1 += set.Team1Games
		in.PointsTeam2 += set.Team2Games
	}
	if in.PointsTeam1 == in.PointsTeam2 {
		if in.SetsTeam1 > in.SetsTeam2 {
			in.PointsTeam1++
		} else {
			in.PointsTeam2++
		}
	}
	return in
}
