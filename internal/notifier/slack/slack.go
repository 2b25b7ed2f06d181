package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/club"
	"github.com/mauv0809/padel-stats/internal/matchmaking"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	scoring   club.ScoringMode
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, scoring club.ScoringMode, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		scoring:   scoring,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// A nil api disables posting. Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, scoring club.ScoringMode, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		scoring:   scoring,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}
	if s.api == nil {
		log.Debug("Slack is not configured, skipping message", "channel", s.channelID)
		return "", "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchResult(match club.Match, dryRun bool) error {
	msg := s.formatMatchResult(match)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(rankings stats.Rankings, dryRun bool) error {
	msg := s.formatStandings(rankings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendGeneratedPairs(teams matchmaking.TeamAssignments, dryRun bool) error {
	msg := s.formatGeneratedPairs(teams)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats the standings as a Block Kit message without posting it.
func (s *Notifier) FormatStandingsResponse(rankings stats.Rankings) (any, error) {
	return s.formatStandings(rankings), nil
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(plainText(text), nil, nil)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func formatDate(t time.Time) string {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	if err != nil {
		return t.Format("Monday 02 Jan, 15:04")
	}
	return t.In(loc).Format("Monday 02 Jan, 15:04")
}

// formatMatchResult creates the Slack message for a newly recorded match using Block Kit.
func (s *Notifier) formatMatchResult(match club.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	blocks = append(blocks, slack.NewHeaderBlock(plainText("🎾 Match recorded! 🎾")))

	// Details
	detailsText := fmt.Sprintf("%s vs %s\n%s", match.Team1.DisplayName(), match.Team2.DisplayName(), formatDate(match.Date))
	blocks = append(blocks, section(detailsText))

	team1, team2 := match.Team1.DisplayName(), match.Team2.DisplayName()
	winner := stats.Winner(s.scoring, match)
	resultHeader := fmt.Sprintf("Result: %s won! 🏆", stats.TeamOf(match, winner).DisplayName())

	var fields []*slack.TextBlockObject
	if s.scoring == club.ScoringPoints {
		fields = append(fields, plainText(fmt.Sprintf("Points\n• %s: %d\n• %s: %d", team1, match.PointsTeam1, team2, match.PointsTeam2)))
	} else {
		for _, set := range match.Sets {
			fields = append(fields, plainText(fmt.Sprintf("Set %d\n• %s: %s\n• %s: %s",
				set.Index,
				team1, games(set.Team1Games, set.TiebreakTeam1),
				team2, games(set.Team2Games, set.TiebreakTeam2),
			)))
		}
		if match.SuperTeam1 != nil && match.SuperTeam2 != nil {
			fields = append(fields, plainText(fmt.Sprintf("Super tiebreak\n• %s: %d\n• %s: %d", team1, *match.SuperTeam1, team2, *match.SuperTeam2)))
		}
		if len(fields) == 0 {
			fields = append(fields, plainText(fmt.Sprintf("Sets\n• %s: %d\n• %s: %d", team1, match.SetsTeam1, team2, match.SetsTeam2)))
		}
	}
	blocks = append(blocks, slack.NewSectionBlock(plainText(resultHeader), fields, nil))

	// Context
	var notes []string
	if match.Score != "" {
		notes = append(notes, "Score: "+match.Score)
	}
	if match.PriceEur > 0 {
		notes = append(notes, fmt.Sprintf("💶 €%.2f on the line, €%.2f per player", match.PriceEur, match.PriceEur/2))
	}
	if len(notes) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", plainText(strings.Join(notes, " | "))))
	}

	return slack.NewBlockMessage(blocks...)
}

func games(n int, tiebreak *int) string {
	if tiebreak == nil {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d (%d)", n, *tiebreak)
}

// formatStandings creates a Slack message to display both ranking tables.
func (s *Notifier) formatStandings(rankings stats.Rankings) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	blocks = append(blocks, slack.NewHeaderBlock(plainText("🏆 Player Leaderboard 🏆")))

	if len(rankings.Individual) == 0 {
		blocks = append(blocks, section("No players registered yet."))
	}
	for i, p := range rankings.Individual {
		rank := i + 1
		var line string
		if s.scoring == club.ScoringPoints {
			line = fmt.Sprintf("%d. %s %s\n> Match Win %%: %.2f%% (%d/%d) | Point Diff: %+d",
				rank, medal(rank), p.Player.Name, p.WinRate, p.Wins, p.Matches, p.Differential)
		} else {
			line = fmt.Sprintf("%d. %s %s\n> Game Win %%: %.2f%% | Set Win %%: %.2f%% | Game Diff: %+d | W/L: %d/%d",
				rank, medal(rank), p.Player.Name, p.GameWinRate, p.SetWinRate, p.Differential, p.Wins, p.Losses)
		}
		blocks = append(blocks, section(line))
	}

	blocks = append(blocks, slack.NewDividerBlock())
	blocks = append(blocks, slack.NewHeaderBlock(plainText("👯 Pair Leaderboard 👯")))

	if len(rankings.Pairs) == 0 {
		blocks = append(blocks, section("No stats available yet. Go play some matches!"))
		return slack.NewBlockMessage(blocks...)
	}
	for i, p := range rankings.Pairs {
		rank := i + 1
		var line string
		if s.scoring == club.ScoringPoints {
			line = fmt.Sprintf("%d. %s %s\n> Match Win %%: %.2f%% (%d/%d) | Point Diff: %+d",
				rank, medal(rank), p.Name, p.WinRate, p.Wins, p.Matches, p.GameDifference)
		} else {
			line = fmt.Sprintf("%d. %s %s\n> Game Win %%: %.2f%% (%d/%d) | Game Diff: %+d | W/L: %d/%d",
				rank, medal(rank), p.Name, p.GameWinRate, p.TotalGamesWon, p.TotalGamesPlayed, p.GameDifference, p.Wins, p.Losses)
		}
		blocks = append(blocks, section(line))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatGeneratedPairs announces a random team draw.
func (s *Notifier) formatGeneratedPairs(teams matchmaking.TeamAssignments) slack.Message {
	names := func(players []matchmaking.Player) string {
		out := make([]string, len(players))
		for i, p := range players {
			out[i] = p.Name
		}
		return strings.Join(out, " & ")
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plainText("🎲 Teams drawn! 🎲")),
		section(fmt.Sprintf("Team 1: %s\nTeam 2: %s", names(teams.Team1), names(teams.Team2))),
	)
}
