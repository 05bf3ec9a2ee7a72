package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-writer/internal/autosave"
	"github.com/pdiddy/novel-writer/pkg/types"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a manual backup of the latest draft",
	Long: `Backup copies the latest draft into the backup directory with embedded
backup metadata. Backups past the retention limit are removed oldest-first.`,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().String("saves-dir", "saves", "directory for versioned draft saves")
	backupCmd.Flags().String("backups-dir", "backups", "directory for draft backups")

	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	savesDir, _ := cmd.Flags().GetString("saves-dir")
	backupsDir, _ := cmd.Flags().GetString("backups-dir")

	store, err := autosave.NewStore(types.SaveConfig{
		SaveDir:   savesDir,
		BackupDir: backupsDir,
	})
	if err != nil {
		return err
	}

	draft, err := store.LoadLatest()
	if err != nil {
		return err
	}
	if draft == nil {
		return fmt.Errorf("no draft to back up: run 'novel-writer write' first")
	}

	path, err := store.CreateBackup(draft, types.BackupManual)
	if err != nil {
		return err
	}

	fmt.Println("Backup written:", path)
	return nil
}
