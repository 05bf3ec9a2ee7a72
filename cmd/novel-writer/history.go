package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-writer/internal/autosave"
	"github.com/pdiddy/novel-writer/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent draft save versions",
	Long: `History lists the save files on disk with their embedded version
numbers, timestamps, and word counts, newest first. Save files with
unreadable contents are skipped.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("saves-dir", "saves", "directory for versioned draft saves")
	historyCmd.Flags().Int("limit", 3, "number of saves to show (0 = all)")
	historyCmd.Flags().Bool("json", false, "output the listing as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	savesDir, _ := cmd.Flags().GetString("saves-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := autosave.NewStore(types.SaveConfig{SaveDir: savesDir})
	if err != nil {
		return err
	}

	history, err := store.History()
	if err != nil {
		return err
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	if len(history) == 0 {
		fmt.Println("No saves found.")
		return nil
	}

	fmt.Printf("%-7s  %-16s  %-7s  %s\n", "Version", "Saved", "Words", "File")
	for _, info := range history {
		fmt.Printf("%-7d  %-16s  %-7d  %s\n",
			info.Version, info.Timestamp.Format("2006-01-02 15:04"),
			info.WordCount, info.Filename)
	}
	return nil
}
