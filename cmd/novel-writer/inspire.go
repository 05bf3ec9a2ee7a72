package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspireCmd = &cobra.Command{
	Use:   "inspire",
	Short: "Show the day's inspiration context (news and mood)",
	Long: `Inspire fetches the day's news headlines and weather-derived mood and
prints the inspiration context a writing session would receive. Live
sources require news-api-key and weather-api-key in .secrets/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "inspire: not yet implemented")
		return fmt.Errorf("not yet implemented")
	},
}

func init() {
	inspireCmd.Flags().String("city", "", "city for the weather-derived mood")
	inspireCmd.Flags().String("news-api-key", "", "news API key (default: .secrets/news-api-key)")
	inspireCmd.Flags().String("weather-api-key", "", "weather API key (default: .secrets/weather-api-key)")
	inspireCmd.Flags().Bool("json", false, "output the context as JSON")

	rootCmd.AddCommand(inspireCmd)
}
