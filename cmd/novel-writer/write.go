// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/novel-writer/internal/autosave"
	"github.com/pdiddy/novel-writer/internal/compose"
	"github.com/pdiddy/novel-writer/internal/schedule"
	"github.com/pdiddy/novel-writer/internal/stats"
	"github.com/pdiddy/novel-writer/pkg/types"
)

const (
	defaultTimeout = 120 * time.Second
	defaultModel   = "claude-sonnet-4-5"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write one page of the novel now",
	Long: `Write runs a single writing session immediately: it loads the latest
draft, generates the next page with Claude (or the built-in local generator
with --local), appends the page to the draft, saves a new draft version,
logs the session, and writes the day's output files.`,
	RunE: runWrite,
}

func init() {
	addSessionFlags(writeCmd)
	rootCmd.AddCommand(writeCmd)
}

// addSessionFlags registers the flags shared by write and run.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-dir", ".", "directory containing novel.yaml")
	cmd.Flags().String("saves-dir", "saves", "directory for versioned draft saves")
	cmd.Flags().String("backups-dir", "backups", "directory for draft backups")
	cmd.Flags().String("output-dir", "output", "directory for per-day page and metadata files")
	cmd.Flags().String("json-log", "", "path to the JSON session log (default daily_writing_log.json)")
	cmd.Flags().String("csv-log", "", "path to the CSV session log (default daily_writing_log.csv)")
	cmd.Flags().String("model", "", "Claude model for page generation (default "+defaultModel+")")
	cmd.Flags().String("api-key", "", "Claude API key (default: .secrets/anthropic-api-key)")
	cmd.Flags().Int("retries", 0, "generation retry attempts (0 = default of 3)")
	cmd.Flags().Duration("timeout", 0, "Claude API request timeout (default 120s)")
	cmd.Flags().Bool("local", false, "use the built-in template generator instead of the Claude API")
}

// buildRunner assembles the session runner from flags, config, and secrets.
func buildRunner(cmd *cobra.Command) (*schedule.Runner, error) {
	projectDir, _ := cmd.Flags().GetString("project-dir")
	savesDir, _ := cmd.Flags().GetString("saves-dir")
	backupsDir, _ := cmd.Flags().GetString("backups-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	jsonLog, _ := cmd.Flags().GetString("json-log")
	csvLog, _ := cmd.Flags().GetString("csv-log")
	retries, _ := cmd.Flags().GetInt("retries")

	profile, err := compose.LoadProfile(projectDir)
	if err != nil {
		return nil, err
	}

	store, err := autosave.NewStore(types.SaveConfig{
		SaveDir:     savesDir,
		BackupDir:   backupsDir,
		MaxVersions: viper.GetInt("save.max_versions"),
		MaxBackups:  viper.GetInt("save.max_backups"),
	})
	if err != nil {
		return nil, err
	}

	logger, err := stats.NewLogger(types.StatsConfig{
		JSONLog: jsonLog,
		CSVLog:  csvLog,
	})
	if err != nil {
		return nil, err
	}

	gen, err := buildGenerator(cmd)
	if err != nil {
		return nil, err
	}

	return &schedule.Runner{
		Engine: &compose.Engine{
			Generator:  gen,
			Profile:    profile,
			MaxRetries: retries,
		},
		Saves:     store,
		Stats:     logger,
		OutputDir: outputDir,
	}, nil
}

// buildGenerator picks the Claude API generator when a key is available, or
// the local template generator otherwise.
func buildGenerator(cmd *cobra.Command) (compose.Generator, error) {
	local, _ := cmd.Flags().GetBool("local")
	if local {
		return compose.TemplateGenerator{}, nil
	}

	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	apiKey := secretDefault("anthropic-api-key", apiKeyFlag)
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "no Claude API key found; using the local template generator")
		return compose.TemplateGenerator{}, nil
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("generation.model")
	}
	if model == "" {
		model = defaultModel
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &compose.ClaudeGenerator{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: timeout},
	}, nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	runner, err := buildRunner(cmd)
	if err != nil {
		return err
	}

	result, err := runner.WriteNow(context.Background(), os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nChapter %d, %d words today, %d words total.\n",
		result.Chapter, result.WordCount, result.TotalWords)
	return nil
}
