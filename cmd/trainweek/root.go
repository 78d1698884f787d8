// ABOUTME: Root Cobra command for trainweek CLI.
// ABOUTME: Handles storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mediulus/train-together/internal/config"
	"github.com/mediulus/train-together/internal/storage"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	logger  *zap.Logger
	athlete string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "trainweek",
	Short: "Weekly training summaries and recommendations",
	Long: `Trainweek tracks daily training measurements and turns each week into
an aggregate summary with week-over-week trends and a validated,
AI-drafted recommendation.

WHAT IT TRACKS (per athlete, per day):

  distance, stress, sleep_hours, resting_heart_rate,
  exercise_heart_rate, perceived_exertion

QUICK START:

  $ trainweek add distance 8.5 -a ath1            # Log today's run
  $ trainweek add stress 4 -a ath1 --on 2025-06-02
  $ trainweek summary -a ath1                     # This week's summary
  $ trainweek missing -a ath1                     # Days without input
  $ trainweek recommend -a ath1                   # Generate the weekly note

WEEKS:

  Weeks start on Monday, midnight UTC. Every date belongs to exactly one
  week; summaries are keyed by (athlete, week start) and recomputing a
  week replaces the stored summary in place.

RECOMMENDATIONS:

  'trainweek recommend' builds the week's summary, renders it into a
  prompt, asks the configured Gemini model for a short note, and
  validates the reply against evidentiary and safety rules before
  writing it onto the week's daily records. Set GEMINI_API_KEY to
  enable generation.

MCP INTEGRATION:

  Run 'trainweek mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in ~/.local/share/train-together (sqlite by default; set
  "backend": "badger" in the config for the KV backend).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}

		if verbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
		} else {
			logger = zap.NewNop()
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&athlete, "athlete", "a", "", "athlete identifier")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose pipeline logging")
}

// requireAthlete validates the --athlete flag for commands that need it.
func requireAthlete() error {
	if athlete == "" {
		return fmt.Errorf("--athlete is required")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
