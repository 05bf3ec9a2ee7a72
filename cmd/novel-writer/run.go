package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the agent, writing one page every day",
	Long: `Run keeps the agent alive and executes one writing session at the
configured time every day. A failed session is reported and the schedule
continues; stop the agent with Ctrl-C.`,
	RunE: runDaemon,
}

func init() {
	addSessionFlags(runCmd)
	runCmd.Flags().String("at", "", "daily writing time in HH:MM, 24-hour (default 09:00)")

	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	runner, err := buildRunner(cmd)
	if err != nil {
		return err
	}

	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		at = viper.GetString("schedule.write_at")
	}
	runner.WriteAt = at

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
