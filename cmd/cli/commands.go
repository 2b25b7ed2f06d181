package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dryRun   bool
	announce bool
	timeline bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log Slack messages instead of posting them")
	generatePairsCmd.Flags().BoolVar(&announce, "announce", false, "Post the drawn teams to Slack")
	moneyCmd.Flags().BoolVar(&timeline, "timeline", false, "Show the per-day balance series instead of the ledger")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(deletePlayerCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(addPairCmd)
	rootCmd.AddCommand(deletePairCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(addMatchCmd)
	rootCmd.AddCommand(deleteMatchCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(moneyCmd)
	rootCmd.AddCommand(generatePairsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <name>",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": args[0]})
	},
}

var deletePlayerCmd = &cobra.Command{
	Use:   "delete-player <player-id>",
	Short: "Delete a player that is not part of any pair or match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/players/"+args[0], nil)
	},
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the registered pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/pairs")
	},
}

var addPairCmd = &cobra.Command{
	Use:   "add-pair <name> <player1-id> <player2-id>",
	Short: "Register a pair of two players",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/pairs", map[string]string{
			"name":       args[0],
			"player1_id": args[1],
			"player2_id": args[2],
		})
	},
}

var deletePairCmd = &cobra.Command{
	Use:   "delete-pair <pair-id>",
	Short: "Delete a pair that has not played any match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/pairs/"+args[0], nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var addMatchCmd = &cobra.Command{
	Use:   "add-match <file.json | ->",
	Short: "Record a match from a JSON document",
	Long: `Record a match from a JSON document holding the match input, for example:

  {"team1_pair_id": "...", "team2_pair_id": "...", "sets_team1": 2, "sets_team2": 0,
   "sets": [{"team1_games": 6, "team2_games": 3}, {"team1_games": 6, "team2_games": 4}],
   "price_eur": 10}

Pass - to read the document from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read match: %w", err)
		}
		if !json.Valid(data) {
			return fmt.Errorf("match in %s is not valid JSON", args[0])
		}
		return performRequest(http.MethodPost, "/matches", json.RawMessage(data))
	},
}

var deleteMatchCmd = &cobra.Command{
	Use:   "delete-match <match-id>",
	Short: "Delete a match and its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matches/"+args[0], nil)
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the individual and pair rankings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rankings")
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post the current standings to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/rankings/announce", nil)
	},
}

var moneyCmd = &cobra.Command{
	Use:   "money",
	Short: "Show every player's money balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		if timeline {
			return performGetRequest("/money/timeline")
		}
		return performGetRequest("/money")
	},
}

var generatePairsCmd = &cobra.Command{
	Use:   "generate-pairs <id1> <id2> <id3> <id4>",
	Short: "Draw two random teams from four players",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/pairs/generate"
		if announce {
			endpoint += "?announce=true"
		}
		return performRequest(http.MethodPost, endpoint, map[string][]string{"player_ids": args})
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	if dryRun {
		url += separator(endpoint) + "dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}

func separator(endpoint string) string {
	if strings.Contains(endpoint, "?") {
		return "&"
	}
	return "?"
}
