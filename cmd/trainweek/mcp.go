// ABOUTME: CLI command that runs the MCP server over stdio.
// ABOUTME: Exposes logging, summaries, missing-data, and recommendations as tools.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/mcp"
	"github.com/mediulus/train-together/internal/recommend"
	"github.com/mediulus/train-together/internal/summary"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server",
	Long: `Run trainweek as a Model Context Protocol server over stdio.
Exposes tools for logging measurements, building weekly summaries,
reporting missing data, marking coach plans, and generating
recommendations.

The recommend tool needs a Gemini API key; without one the other
tools still work and recommend reports that it is unavailable.

Claude Desktop config example:
  {
    "mcpServers": {
      "trainweek": {
        "command": "trainweek",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder := summary.NewBuilder(repo, repo, logger)

		var engine *recommend.Engine
		if apiKey := cfg.GetGeminiAPIKey(); apiKey != "" {
			generator, err := recommend.NewGeminiGenerator(cmd.Context(), apiKey, cfg.GeminiModel)
			if err != nil {
				return err
			}
			engine = recommend.NewEngine(builder, repo, repo, generator, logger)
		}

		server, err := mcp.NewServer(repo, builder, engine)
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
