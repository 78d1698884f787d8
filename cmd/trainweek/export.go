// ABOUTME: CLI commands for exporting and importing training data.
// ABOUTME: Exports cover measurements and plan markers; summaries are rebuilt.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediulus/train-together/internal/storage"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all training data",
	Long: `Export every measurement and coach plan marker as JSON or YAML.
Weekly summaries are derived data and are not exported; rebuild them
with 'trainweek summary' after importing.

Examples:
  trainweek export                          # JSON to stdout
  trainweek export --format yaml
  trainweek export -o backup.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.GetAllData(cmd.Context())
		if err != nil {
			return err
		}

		raw, err := storage.MarshalExport(data, exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Println(string(raw))
			return nil
		}
		if err := os.WriteFile(exportOutput, raw, 0600); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		color.Green("✓ Exported %d measurement(s) and %d plan(s) to %s",
			len(data.Measurements), len(data.Plans), exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import training data from an export file",
	Long: `Import measurements and coach plan markers from a file written by
'trainweek export'. Imported measurements merge into existing records;
fields present in the file overwrite, absent fields are left alone.

The format is inferred from the file extension (.json or .yaml/.yml).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		format := "json"
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		}

		data, err := storage.UnmarshalExport(raw, format)
		if err != nil {
			return err
		}
		if err := repo.ImportData(cmd.Context(), data); err != nil {
			return err
		}
		color.Green("✓ Imported %d measurement(s) and %d plan(s)",
			len(data.Measurements), len(data.Plans))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
