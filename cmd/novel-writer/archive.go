package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-writer/internal/archive"
	"github.com/pdiddy/novel-writer/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Bundle the writing directories into a timestamped zip",
	Long: `Archive zips the saves, backups, and output directories into a single
novel_backup_*.zip file for off-machine backup. Archives past the retention
limit are removed oldest-first. Use list to see existing archives.`,
	RunE: runArchive,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing archives, newest first",
	RunE:  runArchiveList,
}

func init() {
	archiveCmd.PersistentFlags().String("archives-dir", "archives", "directory for zip archives")
	archiveCmd.PersistentFlags().Int("max-archives", 0, "archive retention limit (0 = default of 5)")

	archiveCmd.Flags().String("saves-dir", "saves", "directory for versioned draft saves")
	archiveCmd.Flags().String("backups-dir", "backups", "directory for draft backups")
	archiveCmd.Flags().String("output-dir", "output", "directory for per-day output files")

	archiveCmd.AddCommand(archiveListCmd)
	rootCmd.AddCommand(archiveCmd)
}

func archivePacker(cmd *cobra.Command) (*archive.Packer, error) {
	archivesDir, _ := cmd.Flags().GetString("archives-dir")
	maxArchives, _ := cmd.Flags().GetInt("max-archives")
	return archive.NewPacker(types.ArchiveConfig{
		ArchiveDir:  archivesDir,
		MaxArchives: maxArchives,
	})
}

func runArchive(cmd *cobra.Command, args []string) error {
	savesDir, _ := cmd.Flags().GetString("saves-dir")
	backupsDir, _ := cmd.Flags().GetString("backups-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	packer, err := archivePacker(cmd)
	if err != nil {
		return err
	}

	_, err = packer.Create(os.Stdout, savesDir, backupsDir, outputDir)
	return err
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	packer, err := archivePacker(cmd)
	if err != nil {
		return err
	}

	archives, err := packer.List()
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		fmt.Println("No archives found.")
		return nil
	}

	fmt.Printf("%-16s  %-10s  %s\n", "Created", "Size", "File")
	for _, a := range archives {
		fmt.Printf("%-16s  %-10d  %s\n",
			a.CreatedAt.Format("2006-01-02 15:04"), a.SizeBytes, a.Filename)
	}
	return nil
}
