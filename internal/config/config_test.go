package config

import (
	"testing"

	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "padel.db")
	t.Setenv("PORT", "8080")
	t.Setenv("TEAM_MODE", "adhoc")
	t.Setenv("SCORING_MODE", "points")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "")
	t.Setenv("SLACK_SIGNING_SECRET", "shh")
	t.Setenv("GCP_PROJECT", "padel-project")

	cfg := Load()

	assert.Equal(t, "padel.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./migrations", cfg.MigrationsDir)
	assert.Equal(t, club.TeamModeAdhoc, cfg.TeamMode)
	assert.Equal(t, club.ScoringPoints, cfg.ScoringMode)
	assert.Equal(t, "padel-project", cfg.ProjectID)
	assert.Equal(t, "shh", cfg.Slack.SigningSecret)
	assert.False(t, cfg.Slack.Enabled(), "a channel is required as well as a token")
}

func TestParseModes(t *testing.T) {
	mode, err := ParseTeamMode("pair")
	require.NoError(t, err)
	assert.Equal(t, club.TeamModePair, mode)

	_, err = ParseTeamMode("trio")
	assert.Error(t, err)

	scoring, err := ParseScoringMode("sets")
	require.NoError(t, err)
	assert.Equal(t, club.ScoringSets, scoring)

	_, err = ParseScoringMode("")
	assert.Error(t, err)
}
