package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-stats/internal/club"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	teamMode, err := ParseTeamMode(getEnvDefault("TEAM_MODE", string(club.TeamModePair)))
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	scoringMode, err := ParseScoringMode(getEnvDefault("SCORING_MODE", string(club.ScoringSets)))
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvDefault("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		ProjectID:   os.Getenv("GCP_PROJECT"),
		TeamMode:    teamMode,
		ScoringMode: scoringMode,
	}
	return cfg
}

func getEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// ParseTeamMode validates a TEAM_MODE value.
func ParseTeamMode(v string) (club.TeamMode, error) {
	switch mode := club.TeamMode(v); mode {
	case club.TeamModePair, club.TeamModeAdhoc:
		return mode, nil
	}
	return "", fmt.Errorf("unknown team mode %q", v)
}

// ParseScoringMode validates a SCORING_MODE value.
func ParseScoringMode(v string) (club.ScoringMode, error) {
	switch mode := club.ScoringMode(v); mode {
	case club.ScoringSets, club.ScoringPoints:
		return mode, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", v)
}
