package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-writer/internal/autosave"
	"github.com/pdiddy/novel-writer/internal/compose"
	"github.com/pdiddy/novel-writer/pkg/types"
)

// wordsPerPage approximates a printed page for the progress estimate.
const wordsPerPage = 250

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show progress toward the finished novel",
	Long: `Progress loads the latest draft and reports the word count, estimated
page count, draft version, and how far along the novel is against the
target length in novel.yaml.`,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().String("project-dir", ".", "directory containing novel.yaml")
	progressCmd.Flags().String("saves-dir", "saves", "directory for versioned draft saves")

	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	projectDir, _ := cmd.Flags().GetString("project-dir")
	savesDir, _ := cmd.Flags().GetString("saves-dir")

	profile, err := compose.LoadProfile(projectDir)
	if err != nil {
		return err
	}

	store, err := autosave.NewStore(types.SaveConfig{SaveDir: savesDir})
	if err != nil {
		return err
	}

	draft, err := store.LoadLatest()
	if err != nil {
		return err
	}
	if draft == nil {
		fmt.Printf("%s: no draft yet. Run 'novel-writer write' to start.\n", profile.Title)
		return nil
	}

	words := autosave.WordCount(draft)
	pages := (words + wordsPerPage - 1) / wordsPerPage

	title := draft.Title
	if title == "" {
		title = profile.Title
	}

	fmt.Printf("Title:            %s\n", title)
	fmt.Printf("Genre:            %s\n", profile.Genre)
	fmt.Printf("Words written:    %d\n", words)
	fmt.Printf("Estimated pages:  %d (at ~%d words/page)\n", pages, wordsPerPage)
	fmt.Printf("Current chapter:  %d\n", draft.Chapter)
	if draft.SaveMeta != nil {
		fmt.Printf("Draft version:    %d (saved %s)\n",
			draft.SaveMeta.Version, draft.SaveMeta.Timestamp.Format("2006-01-02 15:04"))
	}
	if profile.TargetLength > 0 {
		pct := float64(words) / float64(profile.TargetLength) * 100
		fmt.Printf("Target progress:  %.1f%% of %d words\n", pct, profile.TargetLength)
	}
	return nil
}
