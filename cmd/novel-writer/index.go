// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-writer/internal/index"
	"github.com/pdiddy/novel-writer/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the draft search index (build, search, export)",
	Long: `Index maintains a local SQLite full-text index over every page of
every saved draft version. Use subcommands to build the index from the
saves directory, search it, or export it.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the saved drafts for full-text search",
	Long: `Build reads story_draft_*.json files from the saves directory and
indexes every page with FTS5. Unchanged save files are skipped on
subsequent runs.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	store, err := indexStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d save file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed drafts with full-text search and filters",
	Long: `Search queries the draft index using FTS5 full-text search, structured
filters (chapter, version, draft file), or a combination of both. Results
point back to the save file and page where the prose lives.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	store, err := indexStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := indexOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --chapter, --version, or --draft")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-7s  %-4s  %-50s  %s\n",
		"Rank", "Version", "Ch", "Content", "Draft")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		content := r.Content
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-7d  %-4d  %-50s  %s\n",
			i+1, r.Version, r.Chapter, content, r.DraftFile)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the draft index to JSON or YAML",
	Long: `Export writes the full draft index (or a filtered subset) to
export.json or export.yaml in the index directory. Supports the same
filter flags as search for partial exports.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := indexStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := indexOptsFromFlags(cmd, args)

	switch format {
	case "json", "":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.json in the index directory")
	case "yaml":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.yaml in the index directory")
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}

	return nil
}

// --- shared helpers ---

func indexStore(cmd *cobra.Command) (*index.Store, error) {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	savesDir, _ := cmd.Flags().GetString("saves-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return index.NewStore(types.IndexConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}, savesDir)
}

func indexOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	chapter, _ := cmd.Flags().GetInt("chapter")
	version, _ := cmd.Flags().GetInt("version")
	draftFile, _ := cmd.Flags().GetString("draft")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:      queryText,
		Chapter:    chapter,
		Version:    version,
		DraftFile:  draftFile,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "index", "directory holding the SQLite index")
	indexCmd.PersistentFlags().String("saves-dir", "saves", "directory for versioned draft saves")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Search flags.
	indexSearchCmd.Flags().String("query", "", "full-text search query")
	indexSearchCmd.Flags().Int("chapter", 0, "filter by chapter number")
	indexSearchCmd.Flags().Int("version", 0, "filter by draft version")
	indexSearchCmd.Flags().String("draft", "", "filter by save file name")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "json", "export format: json or yaml")
	indexExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	indexExportCmd.Flags().Int("chapter", 0, "filter by chapter for partial export")
	indexExportCmd.Flags().Int("version", 0, "filter by draft version for partial export")
	indexExportCmd.Flags().String("draft", "", "filter by save file name for partial export")
	indexExportCmd.Flags().Int("limit", 0, "maximum pages to export (0 = all)")

	// Wire subcommands.
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
