// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-writer/internal/stats"
	"github.com/pdiddy/novel-writer/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show writing statistics and streaks",
	Long: `Stats aggregates the session log into progress metrics: totals,
averages, writing streaks, and the most productive day. Use the export
subcommand to write the session history to a standalone CSV or YAML
file, or day to summarize a single date.`,
	RunE: runStats,
}

var statsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session history to CSV or YAML",
	RunE:  runStatsExport,
}

var statsDayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Summarize the sessions logged on one day (default today)",
	RunE:  runStatsDay,
}

func init() {
	statsCmd.PersistentFlags().String("json-log", "", "path to the JSON session log (default daily_writing_log.json)")
	statsCmd.PersistentFlags().String("csv-log", "", "path to the CSV session log (default daily_writing_log.csv)")

	statsExportCmd.Flags().String("format", "csv", "export format: csv or yaml")
	statsExportCmd.Flags().String("out", "", "output file path (default writing_stats.<format>)")
	statsExportCmd.Flags().Int("days", 0, "limit the export to the last N days (0 = all)")

	statsCmd.AddCommand(statsExportCmd)
	statsCmd.AddCommand(statsDayCmd)
	rootCmd.AddCommand(statsCmd)
}

func statsLogger(cmd *cobra.Command) (*stats.Logger, error) {
	jsonLog, _ := cmd.Flags().GetString("json-log")
	csvLog, _ := cmd.Flags().GetString("csv-log")
	return stats.NewLogger(types.StatsConfig{JSONLog: jsonLog, CSVLog: csvLog})
}

func runStats(cmd *cobra.Command, args []string) error {
	logger, err := statsLogger(cmd)
	if err != nil {
		return err
	}

	summary, err := logger.Statistics()
	if err != nil {
		return err
	}
	if summary.TotalSessions == 0 {
		fmt.Println("No sessions logged yet.")
		return nil
	}

	fmt.Printf("Sessions:           %d\n", summary.TotalSessions)
	fmt.Printf("Words written:      %d\n", summary.TotalWordsWritten)
	fmt.Printf("Average per session: %d words\n", summary.AverageWordsPerSession)
	fmt.Printf("Writing days:       %d\n", summary.TotalWritingDays)
	fmt.Printf("Current streak:     %d day(s)\n", summary.CurrentStreak)
	fmt.Printf("Longest streak:     %d day(s)\n", summary.LongestStreak)
	if summary.MostProductiveDay != nil {
		fmt.Printf("Best day:           %s (%d words)\n",
			summary.MostProductiveDay.Date.Format("2006-01-02"),
			summary.MostProductiveDay.WordCount)
	}
	if summary.AverageDurationMinutes > 0 {
		fmt.Printf("Average duration:   %d minutes\n", summary.AverageDurationMinutes)
	}
	return nil
}

func runStatsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	days, _ := cmd.Flags().GetInt("days")

	logger, err := statsLogger(cmd)
	if err != nil {
		return err
	}

	switch format {
	case "csv", "":
		if out == "" {
			out = "writing_stats.csv"
		}
		if err := logger.ExportCSV(out, days); err != nil {
			return err
		}
	case "yaml":
		if out == "" {
			out = "writing_stats.yaml"
		}
		if err := logger.ExportYAML(out, days); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use csv or yaml", format)
	}

	fmt.Println("Exported to", out)
	return nil
}

func runStatsDay(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if len(args) > 0 {
		parsed, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", args[0], err)
		}
		day = parsed
	}

	logger, err := statsLogger(cmd)
	if err != nil {
		return err
	}

	summary, err := logger.DailySummary(day)
	if err != nil {
		return err
	}
	if summary == nil {
		fmt.Printf("No sessions logged on %s.\n", day.Format("2006-01-02"))
		return nil
	}

	fmt.Printf("Date:       %s\n", summary.Date)
	fmt.Printf("Sessions:   %d\n", summary.Sessions)
	fmt.Printf("Words:      %d\n", summary.TotalWordCount)
	fmt.Printf("Summary:    %s\n", summary.CombinedSummary)
	return nil
}
